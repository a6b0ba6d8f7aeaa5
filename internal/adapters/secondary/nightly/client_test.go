package nightly

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmware-artifacts-service/internal/config"
	"firmware-artifacts-service/internal/core/domain"
)

func newTestClient(t *testing.T, maxBytes int64, handler http.HandlerFunc) *nightlyClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.AssetConfig{
		UnzipURL:        server.URL,
		Timeout:         2 * time.Second,
		MaxArchiveBytes: maxBytes,
	}
	return NewNightlyClient(cfg, "ESPresense", "ESPresense", nil).(*nightlyClient)
}

func TestFetchArchive(t *testing.T) {
	payload := []byte("PK\x03\x04fake")
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ESPresense/ESPresense/actions/artifacts/1234.zip", r.URL.Path)
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	})

	data, err := client.FetchArchive(context.Background(), 1234)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchArchive_Non200(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusNoContent, http.StatusInternalServerError} {
		client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.FetchArchive(context.Background(), 55)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.Contains(t, err.Error(), "artifact 55 status code")
	}
}

func TestFetchArchive_TooLarge(t *testing.T) {
	client := newTestClient(t, 8, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{1}, 9))
	})

	_, err := client.FetchArchive(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrArchiveTooLarge)
}

func TestFetchArchive_Unreachable(t *testing.T) {
	cfg := &config.AssetConfig{UnzipURL: "http://127.0.0.1:1", Timeout: time.Second}
	client := NewNightlyClient(cfg, "o", "r", nil)

	_, err := client.FetchArchive(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
