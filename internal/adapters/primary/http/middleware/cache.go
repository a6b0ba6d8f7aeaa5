package middleware

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const headerCache = "X-Cache"

// CacheObserver records response cache activity.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
	SetCacheEntries(n int)
}

type nopCacheObserver struct{}

func (nopCacheObserver) CacheHit()           {}
func (nopCacheObserver) CacheMiss()          {}
func (nopCacheObserver) SetCacheEntries(int) {}

type cachedResponse struct {
	status      int
	contentType string
	location    string
	body        []byte
}

func (r *cachedResponse) size() int64 {
	return int64(len(r.body) + len(r.contentType) + len(r.location))
}

// ResponseCache keeps successful and redirect GET responses keyed by the full
// request URI for a fixed freshness window. It holds at most maxEntries
// responses and maxBytes of response data; the oldest entries are evicted
// first when either bound is exceeded.
type ResponseCache struct {
	entries      *expirable.LRU[string, *cachedResponse]
	maxBytes     int64
	bytes        atomic.Int64
	cacheControl string
	observer     CacheObserver
}

func NewResponseCache(maxEntries int, maxBytes int64, ttl time.Duration, observer CacheObserver) *ResponseCache {
	if observer == nil {
		observer = nopCacheObserver{}
	}
	rc := &ResponseCache{
		maxBytes:     maxBytes,
		cacheControl: fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())),
		observer:     observer,
	}
	// Called under the LRU lock for evictions, expirations and removals.
	onEvict := func(_ string, r *cachedResponse) {
		rc.bytes.Add(-r.size())
	}
	rc.entries = expirable.NewLRU[string, *cachedResponse](maxEntries, onEvict, ttl)
	return rc
}

// Len reports the number of live entries.
func (rc *ResponseCache) Len() int {
	return rc.entries.Len()
}

// Bytes reports the response data currently held.
func (rc *ResponseCache) Bytes() int64 {
	return rc.bytes.Load()
}

func (rc *ResponseCache) store(key string, r *cachedResponse) {
	n := r.size()
	if rc.maxBytes > 0 && n > rc.maxBytes {
		return
	}

	// Add does not report replaced values to onEvict.
	rc.entries.Remove(key)
	rc.bytes.Add(n)
	rc.entries.Add(key, r)

	for rc.maxBytes > 0 && rc.bytes.Load() > rc.maxBytes {
		if _, _, ok := rc.entries.RemoveOldest(); !ok {
			break
		}
	}
	rc.observer.SetCacheEntries(rc.entries.Len())
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if cached, ok := rc.entries.Get(key); ok {
			rc.observer.CacheHit()
			rc.replay(c, cached)
			c.Abort()
			return
		}
		rc.observer.CacheMiss()

		w := &capturingWriter{ResponseWriter: c.Writer, cacheControl: rc.cacheControl}
		c.Writer = w
		c.Header(headerCache, "MISS")

		c.Next()

		status := w.Status()
		if status >= http.StatusBadRequest {
			return
		}
		rc.store(key, &cachedResponse{
			status:      status,
			contentType: w.Header().Get("Content-Type"),
			location:    w.Header().Get("Location"),
			body:        w.body,
		})
	}
}

func (rc *ResponseCache) replay(c *gin.Context, cached *cachedResponse) {
	h := c.Writer.Header()
	if cached.contentType != "" {
		h.Set("Content-Type", cached.contentType)
	}
	if cached.location != "" {
		h.Set("Location", cached.location)
	}
	h.Set("Cache-Control", rc.cacheControl)
	h.Set(headerCache, "HIT")

	c.Writer.WriteHeader(cached.status)
	if len(cached.body) > 0 {
		_, _ = c.Writer.Write(cached.body)
	} else {
		c.Writer.WriteHeaderNow()
	}
}

// capturingWriter copies the body as it is written and stamps Cache-Control
// on cacheable statuses before the header goes out.
type capturingWriter struct {
	gin.ResponseWriter
	cacheControl string
	headerSet    bool
	body         []byte
}

func (w *capturingWriter) WriteHeader(code int) {
	if !w.headerSet {
		w.headerSet = true
		if code < http.StatusBadRequest {
			w.Header().Set("Cache-Control", w.cacheControl)
		} else {
			w.Header().Del(headerCache)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	if !w.headerSet {
		w.WriteHeader(w.ResponseWriter.Status())
	}
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	if !w.headerSet {
		w.WriteHeader(w.ResponseWriter.Status())
	}
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
