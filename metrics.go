package bumparena

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting arena metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors may be shared by several arenas and must be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordAlloc is called after each allocation attempt.
	// err is nil if successful.
	RecordAlloc(size int, err error)

	// RecordBlockAcquired is called when a block is appended to a chain.
	RecordBlockAcquired(capacity int)

	// RecordRelease is called after each ReleaseAll with the number of
	// blocks returned and the time taken.
	RecordRelease(blocks int, duration time.Duration, err error)

	// RecordReset is called after each Reset.
	RecordReset(blocks int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(int, error)                  {}
func (NoopMetricsCollector) RecordBlockAcquired(int)                 {}
func (NoopMetricsCollector) RecordRelease(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReset(int)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount        atomic.Int64
	AllocErrors       atomic.Int64
	AllocBytes        atomic.Int64
	BlocksAcquired    atomic.Int64
	BlockBytes        atomic.Int64
	ReleaseCount      atomic.Int64
	ReleaseErrors     atomic.Int64
	ReleasedBlocks    atomic.Int64
	ReleaseTotalNanos atomic.Int64
	ResetCount        atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size int, err error) {
	b.AllocCount.Add(1)
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBytes.Add(int64(size))
}

// RecordBlockAcquired implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBlockAcquired(capacity int) {
	b.BlocksAcquired.Add(1)
	b.BlockBytes.Add(int64(capacity))
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(blocks int, duration time.Duration, err error) {
	b.ReleaseCount.Add(1)
	b.ReleasedBlocks.Add(int64(blocks))
	b.ReleaseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReleaseErrors.Add(1)
	}
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(int) {
	b.ResetCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocCount:      b.AllocCount.Load(),
		AllocErrors:     b.AllocErrors.Load(),
		AllocBytes:      b.AllocBytes.Load(),
		BlocksAcquired:  b.BlocksAcquired.Load(),
		BlockBytes:      b.BlockBytes.Load(),
		ReleaseCount:    b.ReleaseCount.Load(),
		ReleaseErrors:   b.ReleaseErrors.Load(),
		ReleasedBlocks:  b.ReleasedBlocks.Load(),
		ReleaseAvgNanos: b.getAvgReleaseNanos(),
		ResetCount:      b.ResetCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReleaseNanos() int64 {
	count := b.ReleaseCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReleaseTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount      int64
	AllocErrors     int64
	AllocBytes      int64
	BlocksAcquired  int64
	BlockBytes      int64
	ReleaseCount    int64
	ReleaseErrors   int64
	ReleasedBlocks  int64
	ReleaseAvgNanos int64
	ResetCount      int64
}
