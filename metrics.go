package meshbvh

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring systems
// like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each tree build. elements is the number
	// of primitives inserted, err is nil if successful.
	RecordBuild(kind Kind, elements int, duration time.Duration, err error)

	// RecordNearest is called after each nearest-point query.
	RecordNearest(kind Kind, duration time.Duration)

	// RecordRayCast is called after each ray or sphere cast.
	RecordRayCast(kind Kind, duration time.Duration)

	// RecordInvalidate is called when a cache slot is invalidated.
	RecordInvalidate(kind Kind)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(Kind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNearest(Kind, time.Duration)           {}
func (NoopMetricsCollector) RecordRayCast(Kind, time.Duration)           {}
func (NoopMetricsCollector) RecordInvalidate(Kind)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildElements     atomic.Int64
	BuildTotalNanos   atomic.Int64
	NearestCount      atomic.Int64
	NearestTotalNanos atomic.Int64
	RayCastCount      atomic.Int64
	RayCastTotalNanos atomic.Int64
	InvalidateCount   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(kind Kind, elements int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildElements.Add(int64(elements))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(kind Kind, duration time.Duration) {
	b.NearestCount.Add(1)
	b.NearestTotalNanos.Add(duration.Nanoseconds())
}

// RecordRayCast implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRayCast(kind Kind, duration time.Duration) {
	b.RayCastCount.Add(1)
	b.RayCastTotalNanos.Add(duration.Nanoseconds())
}

// RecordInvalidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInvalidate(kind Kind) {
	b.InvalidateCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		BuildElements:   b.BuildElements.Load(),
		BuildAvgNanos:   avgNanos(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		NearestCount:    b.NearestCount.Load(),
		NearestAvgNanos: avgNanos(b.NearestTotalNanos.Load(), b.NearestCount.Load()),
		RayCastCount:    b.RayCastCount.Load(),
		RayCastAvgNanos: avgNanos(b.RayCastTotalNanos.Load(), b.RayCastCount.Load()),
		InvalidateCount: b.InvalidateCount.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildElements   int64
	BuildAvgNanos   int64
	NearestCount    int64
	NearestAvgNanos int64
	RayCastCount    int64
	RayCastAvgNanos int64
	InvalidateCount int64
}
