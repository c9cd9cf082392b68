package sfatrie

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// entries is the number of indexed units, err is nil if successful.
	RecordBuild(entries int, duration time.Duration, err error)

	// RecordSearch is called after each k-NN search.
	// examined is the number of entries whose exact distance was computed.
	RecordSearch(k int, examined int64, duration time.Duration, err error)

	// RecordRangeSearch is called after each range search.
	RecordRangeSearch(results uint64, examined int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)                 {}
func (NoopMetricsCollector) RecordSearch(int, int64, time.Duration, error)         {}
func (NoopMetricsCollector) RecordRangeSearch(uint64, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildEntries     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	SearchExamined   atomic.Int64
	RangeCount       atomic.Int64
	RangeErrors      atomic.Int64
	RangeTotalNanos  atomic.Int64
	RangeResults     atomic.Int64
	RangeExamined    atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(entries int, _ time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildEntries.Add(int64(entries))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, examined int64, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SearchExamined.Add(examined)
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRangeSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeSearch(results uint64, examined int64, duration time.Duration, err error) {
	b.RangeCount.Add(1)
	b.RangeTotalNanos.Add(duration.Nanoseconds())
	b.RangeResults.Add(int64(results))
	b.RangeExamined.Add(examined)
	if err != nil {
		b.RangeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildEntries:   b.BuildEntries.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		SearchExamined: b.SearchExamined.Load(),
		RangeCount:     b.RangeCount.Load(),
		RangeErrors:    b.RangeErrors.Load(),
		RangeAvgNanos:  avg(b.RangeTotalNanos.Load(), b.RangeCount.Load()),
		RangeResults:   b.RangeResults.Load(),
		RangeExamined:  b.RangeExamined.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildEntries   int64
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	SearchExamined int64
	RangeCount     int64
	RangeErrors    int64
	RangeAvgNanos  int64
	RangeResults   int64
	RangeExamined  int64
}
