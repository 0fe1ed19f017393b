package metrics

import "time"

// CacheOp enumerates cache access outcomes for counters.
type CacheOp string

const (
	CacheHit   CacheOp = "hit"
	CacheMiss  CacheOp = "miss"
	CacheEvict CacheOp = "evict"
)

// Recorder defines observability hooks for content resolution and caching.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection) and must never block or panic into the caller.
type Recorder interface {
	ObserveResolveDuration(version string, d time.Duration)
	ObserveScanDuration(version string, d time.Duration)
	IncCacheOp(op CacheOp, key string)
	IncSecurityViolation(version string)
	IncNotFound(version string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(string, time.Duration) {}
func (NoopRecorder) ObserveScanDuration(string, time.Duration)    {}
func (NoopRecorder) IncCacheOp(CacheOp, string)                   {}
func (NoopRecorder) IncSecurityViolation(string)                  {}
func (NoopRecorder) IncNotFound(string)                           {}
