package bumparena

import (
	"time"

	"github.com/hupe1980/bumparena/internal/arena"
	"github.com/hupe1980/bumparena/internal/block"
	"github.com/hupe1980/bumparena/internal/memsys"
	"github.com/hupe1980/bumparena/internal/resource"
)

// Stats tracks arena memory usage. See the field comments for which values
// are cumulative.
type Stats = arena.Stats

// BlockInfo is a snapshot of one block in an arena's chain.
type BlockInfo = arena.BlockInfo

// Handle refers to an allocation by position. It resolves through
// Arena.Resolve only until the next ReleaseAll or Reset.
type Handle = arena.Handle

// HeaderSize is the per-block bookkeeping overhead in bytes.
const HeaderSize = block.HeaderSize

// Arena is a region allocator. The zero value is not usable; call New.
//
// Arena is not safe for concurrent use.
type Arena struct {
	core    *arena.Arena
	budget  *memsys.Budget
	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty Arena. No memory is acquired until the first allocation.
func New(optFns ...Option) *Arena {
	o := applyOptions(optFns)

	sys := o.memory
	if sys == nil {
		if o.offHeap {
			sys = memsys.NewOffHeap()
		} else {
			sys = memsys.NewHeap()
		}
	}

	a := &Arena{
		metrics: o.metricsCollector,
		logger:  o.logger,
	}

	a.budget = memsys.NewBudget(sys, resource.NewController(resource.Config{
		MemoryLimitBytes: o.memoryLimit,
	}))

	a.core = arena.New(o.defaultCapacity,
		arena.WithMemorySystem(a.budget),
		arena.WithBlockHook(a.onBlockAcquired),
	)
	return a
}

func (a *Arena) onBlockAcquired(index, capacity int) {
	a.metrics.RecordBlockAcquired(capacity)
	a.logger.LogBlockAcquired(index, capacity)
}

// Alloc returns size bytes of arena memory.
//
// The slice has len == cap == size, never overlaps another live allocation
// and stays valid until ReleaseAll or Reset. Its contents are zero only if
// the memory system hands out zeroed memory and the bytes were not used
// before a Reset. A size <= 0 fails with ErrInvalidSize.
func (a *Arena) Alloc(size int) ([]byte, error) {
	p, err := a.core.Allocate(size)
	return p, a.observe("alloc", size, 1, err)
}

// AllocAligned is like Alloc but the first byte is aligned to align, which
// must be a power of two. Padding counts against the block's capacity.
func (a *Arena) AllocAligned(size, align int) ([]byte, error) {
	p, err := a.core.AllocateAligned(size, align)
	return p, a.observe("alloc aligned", size, align, err)
}

// AllocHandle allocates size bytes and returns a Handle instead of a slice.
func (a *Arena) AllocHandle(size int) (Handle, error) {
	h, err := a.core.AllocateHandle(size)
	return h, a.observe("alloc handle", size, 1, err)
}

// Resolve returns the bytes behind h, or ErrStaleHandle if the arena was
// released or reset since h was issued.
func (a *Arena) Resolve(h Handle) ([]byte, error) {
	return a.core.Resolve(h)
}

func (a *Arena) observe(op string, size, align int, err error) error {
	a.metrics.RecordAlloc(size, err)
	if err != nil {
		a.logger.LogAllocFailure(size, align, err)
	}
	return translateError(op, size, align, err)
}

// ReleaseAll returns every block to the memory system and empties the arena,
// which is immediately reusable. All slices and handles from this arena
// become invalid.
//
// Every block is visited even if some fail to release; all failures are
// joined in chain order. Calling ReleaseAll on an empty arena does nothing.
func (a *Arena) ReleaseAll() error {
	blocks := a.core.Len()
	bytes := a.core.Stats().BytesReserved

	start := time.Now()
	err := a.core.ReleaseAll()

	a.metrics.RecordRelease(blocks, time.Since(start), err)
	a.logger.LogRelease(blocks, bytes, err)
	return err
}

// Reset keeps every block but rewinds it to empty, so the next allocations
// reuse the chain without acquiring memory. All slices and handles from
// this arena become invalid. With WithOffHeap the whole pages that were used
// are handed back to the kernel, so an idle arena keeps its address space
// but not its resident memory.
func (a *Arena) Reset() {
	a.core.Reset()

	blocks := a.core.Len()
	a.metrics.RecordReset(blocks)
	a.logger.LogReset(blocks)
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return a.core.Stats()
}

// Blocks returns a snapshot of the block chain, head first.
func (a *Arena) Blocks() []BlockInfo {
	return a.core.Blocks()
}

// Len returns the number of blocks in the chain.
func (a *Arena) Len() int {
	return a.core.Len()
}

// BaseCapacity returns the capacity new blocks start growing from.
func (a *Arena) BaseCapacity() int {
	return a.core.BaseCapacity()
}

// Usage returns the share of reserved payload bytes handed out, in percent.
func (a *Arena) Usage() float64 {
	return a.core.Usage()
}

// MemoryUsage returns the bytes currently held from the memory system,
// block headers included.
func (a *Arena) MemoryUsage() int64 {
	return a.budget.Controller().MemoryUsage()
}

// PeakMemoryUsage returns the highest MemoryUsage observed over the arena's
// lifetime. ReleaseAll does not reset it.
func (a *Arena) PeakMemoryUsage() int64 {
	return a.budget.Controller().PeakMemoryUsage()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (a *Arena) MemoryLimit() int64 {
	return a.budget.Controller().MemoryLimit()
}

func (a *Arena) String() string {
	return a.core.String()
}
