package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firmware-artifacts-service/internal/config"
	"firmware-artifacts-service/internal/core/domain"
	"firmware-artifacts-service/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*githubClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.GitHubConfig{
		APIURL:      server.URL,
		Token:       "test-token",
		Owner:       "ESPresense",
		Repo:        "ESPresense",
		Workflow:    "build.yml",
		RunsPerPage: 5,
		Timeout:     2 * time.Second,
	}
	return NewGitHubClient(cfg, nil).(*githubClient), server
}

func TestListSuccessfulRuns(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/ESPresense/ESPresense/actions/workflows/build.yml/runs", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("branch"))
		assert.Equal(t, "success", r.URL.Query().Get("status"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"total_count": 2,
			"workflow_runs": [
				{"id": 222, "head_branch": "main", "head_sha": "f00dfacecafe", "status": "completed", "conclusion": "success", "created_at": "2024-05-02T10:00:00Z"},
				{"id": 111, "head_branch": "main", "head_sha": "deadbeef00", "status": "completed", "conclusion": "success", "created_at": "2024-05-01T10:00:00Z"}
			]
		}`)
	})

	runs, err := client.ListSuccessfulRuns(context.Background(), "main")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(222), runs[0].ID)
	assert.Equal(t, "f00dfacecafe", runs[0].HeadSHA)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), runs[0].CreatedAt)
}

func TestListSuccessfulRuns_EscapesBranch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "feature/ble scan", r.URL.Query().Get("branch"))
		fmt.Fprint(w, `{"total_count": 0, "workflow_runs": []}`)
	})

	runs, err := client.ListSuccessfulRuns(context.Background(), "feature/ble scan")
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestListSuccessfulRuns_ErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	_, err := client.ListSuccessfulRuns(context.Background(), "main")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
}

func TestListRunArtifacts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/ESPresense/ESPresense/actions/runs/42/artifacts", r.URL.Path)
		fmt.Fprint(w, `{
			"total_count": 2,
			"artifacts": [
				{"id": 1001, "name": "esp32.bin", "size_in_bytes": 1200000, "expired": false,
				 "workflow_run": {"id": 42, "head_branch": "main", "head_sha": "abc1234def"}},
				{"id": 1002, "name": "esp32c3.bin", "size_in_bytes": 1100000, "expired": false}
			]
		}`)
	})

	artifacts, err := client.ListRunArtifacts(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "esp32.bin", artifacts[0].Name)
	require.NotNil(t, artifacts[0].WorkflowRun)
	assert.Equal(t, "main", artifacts[0].WorkflowRun.HeadBranch)
	assert.Nil(t, artifacts[1].WorkflowRun)
}

func TestListRunArtifacts_Paginates(t *testing.T) {
	pages := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		page := r.URL.Query().Get("page")

		resp := artifactsResponse{TotalCount: maxPerPage + 1}
		if page == "1" {
			for i := 0; i < maxPerPage; i++ {
				resp.Artifacts = append(resp.Artifacts, artifact{ID: int64(i + 1), Name: fmt.Sprintf("a%d.bin", i)})
			}
		} else {
			resp.Artifacts = []artifact{{ID: 999, Name: "esp32.bin"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	artifacts, err := client.ListRunArtifacts(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, artifacts, maxPerPage+1)
	assert.Equal(t, 2, pages)
	assert.Equal(t, "esp32.bin", artifacts[maxPerPage].Name)
}

func TestListRunArtifacts_Empty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count": 0, "artifacts": []}`)
	})

	artifacts, err := client.ListRunArtifacts(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, artifacts)
	assert.Empty(t, artifacts)
}

func TestListRunArtifacts_Timeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListRunArtifacts(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestListRunArtifacts_ObservesCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count": 0, "artifacts": []}`)
	}))
	defer server.Close()

	observer := new(testutil.MockUpstreamObserver)
	observer.On("ObserveUpstream", "github", "list_artifacts", http.StatusOK, mock.AnythingOfType("time.Duration")).Return()

	client := NewGitHubClient(&config.GitHubConfig{APIURL: server.URL, Owner: "o", Repo: "r", Workflow: "w"}, observer)
	_, err := client.ListRunArtifacts(context.Background(), 1)
	require.NoError(t, err)
	observer.AssertExpectations(t)
}
