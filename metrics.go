package hwt

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called from every query goroutine, so implementations must
// be safe for concurrent use.
type MetricsCollector interface {
	// RecordInsert is called after each insert.
	RecordInsert(duration time.Duration)

	// RecordConvert is called when a leaf at the given level becomes a branch
	// with the given number of children.
	RecordConvert(level, children int)

	// RecordNearest is called after each nearest neighbor search.
	// k is the number of neighbors requested, found the number returned and
	// visits the number of queue entries processed.
	RecordNearest(k, found, visits int, duration time.Duration)

	// RecordRadius is called when a radius search has been consumed or abandoned.
	RecordRadius(radius uint32, found int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration)                 {}
func (NoopMetricsCollector) RecordConvert(int, int)                     {}
func (NoopMetricsCollector) RecordNearest(int, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordRadius(uint32, int, time.Duration)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount       atomic.Int64
	InsertTotalNanos  atomic.Int64
	ConvertCount      atomic.Int64
	ConvertChildren   atomic.Int64
	NearestCount      atomic.Int64
	NearestResults    atomic.Int64
	NearestVisits     atomic.Int64
	NearestTotalNanos atomic.Int64
	RadiusCount       atomic.Int64
	RadiusResults     atomic.Int64
	RadiusTotalNanos  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
}

// RecordConvert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvert(_, children int) {
	b.ConvertCount.Add(1)
	b.ConvertChildren.Add(int64(children))
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(_, found, visits int, duration time.Duration) {
	b.NearestCount.Add(1)
	b.NearestResults.Add(int64(found))
	b.NearestVisits.Add(int64(visits))
	b.NearestTotalNanos.Add(duration.Nanoseconds())
}

// RecordRadius implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRadius(_ uint32, found int, duration time.Duration) {
	b.RadiusCount.Add(1)
	b.RadiusResults.Add(int64(found))
	b.RadiusTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertAvgNanos:  avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		ConvertCount:    b.ConvertCount.Load(),
		ConvertChildren: b.ConvertChildren.Load(),
		NearestCount:    b.NearestCount.Load(),
		NearestResults:  b.NearestResults.Load(),
		NearestVisits:   b.NearestVisits.Load(),
		NearestAvgNanos: avg(b.NearestTotalNanos.Load(), b.NearestCount.Load()),
		RadiusCount:     b.RadiusCount.Load(),
		RadiusResults:   b.RadiusResults.Load(),
		RadiusAvgNanos:  avg(b.RadiusTotalNanos.Load(), b.RadiusCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	InsertCount     int64
	InsertAvgNanos  int64
	ConvertCount    int64
	ConvertChildren int64
	NearestCount    int64
	NearestResults  int64
	NearestVisits   int64
	NearestAvgNanos int64
	RadiusCount     int64
	RadiusResults   int64
	RadiusAvgNanos  int64
}
