package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	resolveDuration    *prom.HistogramVec
	scanDuration       *prom.HistogramVec
	cacheOps           *prom.CounterVec
	securityViolations *prom.CounterVec
	notFound           *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.resolveDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of single-document resolutions",
			Buckets:   prom.DefBuckets,
		}, []string{"version"})
		pr.scanDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full corpus scans",
			Buckets:   prom.DefBuckets,
		}, []string{"version"})
		pr.cacheOps = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "cache_operations_total",
			Help:      "Cache accesses by outcome",
		}, []string{"op"})
		pr.securityViolations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "content_security_violations_total",
			Help:      "Documents rejected or sanitized by the content security validator",
		}, []string{"version"})
		pr.notFound = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "resolve_not_found_total",
			Help:      "Resolutions that produced a not-found outcome",
		}, []string{"version"})
		reg.MustRegister(pr.resolveDuration, pr.scanDuration, pr.cacheOps, pr.securityViolations, pr.notFound)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(version string, d time.Duration) {
	if p == nil || p.resolveDuration == nil {
		return
	}
	p.resolveDuration.WithLabelValues(version).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveScanDuration(version string, d time.Duration) {
	if p == nil || p.scanDuration == nil {
		return
	}
	p.scanDuration.WithLabelValues(version).Observe(d.Seconds())
}

// IncCacheOp counts a cache access. The key is intentionally not a label:
// slugs are unbounded and would explode cardinality.
func (p *PrometheusRecorder) IncCacheOp(op CacheOp, _ string) {
	if p == nil || p.cacheOps == nil {
		return
	}
	p.cacheOps.WithLabelValues(string(op)).Inc()
}

func (p *PrometheusRecorder) IncSecurityViolation(version string) {
	if p == nil || p.securityViolations == nil {
		return
	}
	p.securityViolations.WithLabelValues(version).Inc()
}

func (p *PrometheusRecorder) IncNotFound(version string) {
	if p == nil || p.notFound == nil {
		return
	}
	p.notFound.WithLabelValues(version).Inc()
}
