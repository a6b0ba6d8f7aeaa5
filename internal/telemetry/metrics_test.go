package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveUpstream(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveUpstream("github", "list_runs", 200, 150*time.Millisecond)
	c.ObserveUpstream("github", "list_runs", 200, 50*time.Millisecond)
	c.ObserveUpstream("nightly.link", "fetch_artifact", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.upstreamTotal.WithLabelValues("github", "list_runs", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamTotal.WithLabelValues("nightly.link", "fetch_artifact", "0")))
}

func TestCollector_Cache(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.CacheHit()
	c.CacheMiss()
	c.CacheMiss()
	c.SetCacheEntries(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheMisses))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.cacheEntries))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(nil)
	c.ObserveRequest("GET", "/artifacts/:manifest", 200, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "firmware_artifacts_http_requests_total"))
	assert.True(t, strings.Contains(body, `route="/artifacts/:manifest"`))
}
