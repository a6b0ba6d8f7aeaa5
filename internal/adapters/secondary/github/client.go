package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"firmware-artifacts-service/internal/adapters/secondary/upstream"
	"firmware-artifacts-service/internal/config"
	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

const (
	serviceName     = "github"
	apiVersion      = "2022-11-28"
	maxPerPage      = 100
	maxArtifactPage = 10
)

type githubClient struct {
	client      *upstream.Client
	baseURL     string
	token       string
	owner       string
	repo        string
	workflow    string
	runsPerPage int
}

// NewGitHubClient creates a CI provider backed by the GitHub Actions REST API
func NewGitHubClient(cfg *config.GitHubConfig, observer output.UpstreamObserver) output.CIProvider {
	perPage := cfg.RunsPerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = 10
	}

	return &githubClient{
		client:      upstream.NewClient(serviceName, cfg.Timeout, observer),
		baseURL:     cfg.APIURL,
		token:       cfg.Token,
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		workflow:    cfg.Workflow,
		runsPerPage: perPage,
	}
}

func (c *githubClient) ListSuccessfulRuns(ctx context.Context, branch string) ([]domain.WorkflowRun, error) {
	params := url.Values{}
	params.Set("branch", branch)
	params.Set("status", domain.RunStatusSuccess)
	params.Set("per_page", strconv.Itoa(c.runsPerPage))

	reqURL := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/runs?%s",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), url.PathEscape(c.workflow), params.Encode())

	var runsResp workflowRunsResponse
	if err := c.get(ctx, reqURL, "list_runs", fmt.Sprintf("workflow runs for branch %s", branch), &runsResp); err != nil {
		return nil, err
	}

	runs := make([]domain.WorkflowRun, 0, len(runsResp.WorkflowRuns))
	for _, r := range runsResp.WorkflowRuns {
		runs = append(runs, domain.WorkflowRun{
			ID:         r.ID,
			HeadBranch: r.HeadBranch,
			HeadSHA:    r.HeadSHA,
			Status:     r.Status,
			Conclusion: r.Conclusion,
			CreatedAt:  r.CreatedAt,
		})
	}
	return runs, nil
}

// ListRunArtifacts follows pagination until total_count artifacts are read.
func (c *githubClient) ListRunArtifacts(ctx context.Context, runID int64) ([]domain.Artifact, error) {
	var all []domain.Artifact

	for page := 1; page <= maxArtifactPage; page++ {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(maxPerPage))
		params.Set("page", strconv.Itoa(page))

		reqURL := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d/artifacts?%s",
			c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), runID, params.Encode())

		var artsResp artifactsResponse
		if err := c.get(ctx, reqURL, "list_artifacts", fmt.Sprintf("artifacts for run %d", runID), &artsResp); err != nil {
			return nil, err
		}

		for _, a := range artsResp.Artifacts {
			all = append(all, toDomainArtifact(a))
		}

		if len(all) >= artsResp.TotalCount || len(artsResp.Artifacts) < maxPerPage {
			break
		}
	}

	if all == nil {
		all = []domain.Artifact{}
	}
	return all, nil
}

func (c *githubClient) get(ctx context.Context, reqURL, operation, resource string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create github request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", "firmware-artifacts-service")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req, operation)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.UpstreamError{Service: serviceName, Resource: resource, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w: %v", resource, domain.ErrUpstreamUnavailable, err)
	}
	return nil
}

func toDomainArtifact(a artifact) domain.Artifact {
	out := domain.Artifact{
		ID:          a.ID,
		Name:        a.Name,
		SizeInBytes: a.SizeInBytes,
		Expired:     a.Expired,
	}
	if a.WorkflowRun != nil {
		out.WorkflowRun = &domain.WorkflowRunRef{
			ID:         a.WorkflowRun.ID,
			HeadBranch: a.WorkflowRun.HeadBranch,
			HeadSHA:    a.WorkflowRun.HeadSHA,
		}
	}
	return out
}
