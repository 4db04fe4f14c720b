package splitmatch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one record per pipeline stage.
// Implement it to feed a monitoring system.
type MetricsCollector interface {
	// RecordParse is called after a tree set has been read.
	RecordParse(trees int, duration time.Duration, err error)

	// RecordAccumulate is called after a forest has been scored.
	// splits is the number of bipartitions, matches the table total.
	RecordAccumulate(splits int, matches uint64, duration time.Duration, err error)

	// RecordWrite is called after a report has been stored.
	RecordWrite(duration time.Duration, err error)
}

// NoopMetricsCollector discards all records.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(int, time.Duration, error)              {}
func (NoopMetricsCollector) RecordAccumulate(int, uint64, time.Duration, error) {}
func (NoopMetricsCollector) RecordWrite(time.Duration, error)                   {}

// BasicMetricsCollector keeps counters in memory.
type BasicMetricsCollector struct {
	ParseCount      atomic.Int64
	ParseErrors     atomic.Int64
	TreesParsed     atomic.Int64
	ParseTotalNanos atomic.Int64

	AccumulateCount      atomic.Int64
	AccumulateErrors     atomic.Int64
	SplitsScored         atomic.Int64
	Matches              atomic.Uint64
	AccumulateTotalNanos atomic.Int64

	WriteCount  atomic.Int64
	WriteErrors atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(trees int, duration time.Duration, err error) {
	b.ParseCount.Add(1)
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ParseErrors.Add(1)
		return
	}
	b.TreesParsed.Add(int64(trees))
}

// RecordAccumulate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAccumulate(splits int, matches uint64, duration time.Duration, err error) {
	b.AccumulateCount.Add(1)
	b.AccumulateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AccumulateErrors.Add(1)
		return
	}
	b.SplitsScored.Add(int64(splits))
	b.Matches.Add(matches)
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(_ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:         b.ParseCount.Load(),
		ParseErrors:        b.ParseErrors.Load(),
		TreesParsed:        b.TreesParsed.Load(),
		ParseAvgNanos:      avg(b.ParseTotalNanos.Load(), b.ParseCount.Load()),
		AccumulateCount:    b.AccumulateCount.Load(),
		AccumulateErrors:   b.AccumulateErrors.Load(),
		SplitsScored:       b.SplitsScored.Load(),
		Matches:            b.Matches.Load(),
		AccumulateAvgNanos: avg(b.AccumulateTotalNanos.Load(), b.AccumulateCount.Load()),
		WriteCount:         b.WriteCount.Load(),
		WriteErrors:        b.WriteErrors.Load(),
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
	ParseCount         int64
	ParseErrors        int64
	TreesParsed        int64
	ParseAvgNanos      int64
	AccumulateCount    int64
	AccumulateErrors   int64
	SplitsScored       int64
	Matches            uint64
	AccumulateAvgNanos int64
	WriteCount         int64
	WriteErrors        int64
}
