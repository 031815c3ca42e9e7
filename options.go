package bumparena

import (
	"log/slog"

	"github.com/hupe1980/bumparena/internal/block"
)

// DefaultCapacity is the payload capacity new blocks start from (8 KiB).
const DefaultCapacity = block.DefaultCapacity

type options struct {
	defaultCapacity  int
	memory           MemorySystem
	offHeap          bool
	memoryLimit      int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Arena.
type Option func(*options)

// WithDefaultCapacity sets the capacity blocks start growing from.
// Non-positive values select DefaultCapacity.
//
// Small capacities are useful in tests to exercise block chaining without
// large inputs.
func WithDefaultCapacity(capacity int) Option {
	return func(o *options) {
		o.defaultCapacity = capacity
	}
}

// WithMemorySystem sets the memory system blocks are acquired from.
// It takes precedence over WithOffHeap. Pass nil for the default heap system.
func WithMemorySystem(sys MemorySystem) Option {
	return func(o *options) {
		o.memory = sys
	}
}

// WithOffHeap acquires blocks from anonymous memory mappings instead of the
// Go heap. Payload bytes are then invisible to the garbage collector, so they
// must not hold Go pointers.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithMemoryLimit caps the bytes (headers included) the arena may hold.
// Acquisitions beyond the limit fail with ErrOutOfMemory.
// If bytes <= 0, no limit is enforced; MemoryUsage and PeakMemoryUsage are
// tracked either way.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMetricsCollector configures a metrics collector for arena operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bumparena.BasicMetricsCollector{}
//	a := bumparena.New(bumparena.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
//	fmt.Printf("Allocs: %d, Blocks: %d\n", stats.AllocCount, stats.BlocksAcquired)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for arena operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bumparena.NewJSONLogger(slog.LevelDebug)
//	a := bumparena.New(bumparena.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		defaultCapacity:  DefaultCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.defaultCapacity <= 0 {
		o.defaultCapacity = DefaultCapacity
	}
	return o
}
