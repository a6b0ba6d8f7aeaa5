package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

// Client wraps an *http.Client with timeout classification and observation.
type Client struct {
	service    string
	httpClient *http.Client
	observer   output.UpstreamObserver
}

func NewClient(service string, timeout time.Duration, observer output.UpstreamObserver) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if observer == nil {
		observer = output.NopObserver{}
	}
	return &Client{
		service: service,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
	}
}

// Service names the upstream in errors and metrics.
func (c *Client) Service() string {
	return c.service
}

// Do sends req and records the outcome under operation. Transport failures
// are wrapped in ErrUpstreamTimeout or ErrUpstreamUnavailable. The caller
// owns the response body.
func (c *Client) Do(req *http.Request, operation string) (*http.Response, error) {
	start := time.Now()

	log.WithFields(log.Fields{
		"service":   c.service,
		"operation": operation,
		"url":       req.URL.Redacted(),
	}).Debug("calling upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveUpstream(c.service, operation, 0, time.Since(start))
		return nil, c.classify(req.Context(), operation, err)
	}

	c.observer.ObserveUpstream(c.service, operation, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (c *Client) classify(ctx context.Context, operation string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s %s: %w: %v", c.service, operation, domain.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%s %s: %w: %v", c.service, operation, domain.ErrUpstreamUnavailable, err)
}
