package ports

import "time"

// UpstreamObserver records the outcome of calls made to upstream services.
// A statusCode of 0 means no response was received.
type UpstreamObserver interface {
	ObserveUpstream(service, operation string, statusCode int, d time.Duration)
}

// NopObserver discards observations.
type NopObserver struct{}

func (NopObserver) ObserveUpstream(string, string, int, time.Duration) {}
