package nightly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"firmware-artifacts-service/internal/adapters/secondary/upstream"
	"firmware-artifacts-service/internal/config"
	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

const serviceName = "nightly.link"

type nightlyClient struct {
	client   *upstream.Client
	baseURL  string
	owner    string
	repo     string
	maxBytes int64
}

// NewNightlyClient creates an archive fetcher for the nightly.link unzip proxy
func NewNightlyClient(cfg *config.AssetConfig, owner, repo string, observer output.UpstreamObserver) output.ArchiveFetcher {
	return &nightlyClient{
		client:   upstream.NewClient(serviceName, cfg.Timeout, observer),
		baseURL:  cfg.UnzipURL,
		owner:    owner,
		repo:     repo,
		maxBytes: cfg.MaxArchiveBytes,
	}
}

// FetchArchive downloads {base}/{owner}/{repo}/actions/artifacts/{id}.zip.
// Any status other than 200 is an error.
func (c *nightlyClient) FetchArchive(ctx context.Context, artifactID int64) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/actions/artifacts/%d.zip",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), artifactID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}

	resp, err := c.client.Do(req, "fetch_artifact")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &domain.UpstreamError{
			Service:    serviceName,
			Resource:   fmt.Sprintf("artifact %d", artifactID),
			StatusCode: resp.StatusCode,
		}
	}

	var body io.Reader = resp.Body
	if c.maxBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read artifact %d: %w: %v", artifactID, domain.ErrUpstreamUnavailable, err)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("artifact %d: %w", artifactID, domain.ErrArchiveTooLarge)
	}

	return data, nil
}
