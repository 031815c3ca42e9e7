package arena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bumparena/internal/block"
	"github.com/hupe1980/bumparena/internal/conv"
	"github.com/hupe1980/bumparena/internal/memsys"
)

// ErrStaleHandle is returned when a handle outlived the allocation cycle it came from.
var ErrStaleHandle = errors.New("arena: stale handle")

// Stats tracks arena memory usage metrics.
//
// Note on semantics:
//   - BytesReserved: payload capacity of the blocks currently held
//   - BytesUsed: bytes requested by allocations (before alignment)
//   - BytesWasted: padding added for alignment
//   - BlocksAcquired, BlocksReleased, TotalAllocs, FailedAllocs: cumulative
type Stats struct {
	BlocksAcquired uint64 // Historical: total blocks ever acquired
	BlocksReleased uint64 // Historical: total blocks returned to the memory system
	ActiveBlocks   uint64 // Current: blocks in the chain
	BytesReserved  uint64 // Current: payload capacity held
	BytesUsed      uint64 // Current: bytes handed out
	BytesWasted    uint64 // Current: alignment padding
	TotalAllocs    uint64 // Historical: successful allocations
	FailedAllocs   uint64 // Historical: rejected allocations
}

// BlockInfo is a snapshot of one block in the chain.
type BlockInfo struct {
	Index    int
	Usage    int
	Capacity int
	Current  bool
}

// Handle refers to an allocation by position instead of by pointer.
// It resolves only while the arena is in the generation that produced it.
type Handle struct {
	gen    uint32
	block  int
	offset int
	size   int
}

// Len returns the size of the allocation.
func (h Handle) Len() int { return h.size }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// Arena is a region allocator over a chain of blocks.
type Arena struct {
	sys          memsys.System
	baseCapacity int
	blocks       []*block.Block
	end          int // index of the current block; 0 when empty
	generation   uint32
	onAcquire    func(index, capacity int)
	stats        Stats
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemorySystem sets the memory system blocks are acquired from.
func WithMemorySystem(sys memsys.System) Option {
	return func(a *Arena) {
		if sys != nil {
			a.sys = sys
		}
	}
}

// WithBlockHook registers fn to be called after every block acquisition.
func WithBlockHook(fn func(index, capacity int)) Option {
	return func(a *Arena) {
		a.onAcquire = fn
	}
}

// New creates an empty Arena. A non-positive baseCapacity selects
// block.DefaultCapacity. No memory is acquired until the first allocation.
func New(baseCapacity int, opts ...Option) *Arena {
	if baseCapacity <= 0 {
		baseCapacity = block.DefaultCapacity
	}

	a := &Arena{
		sys:          memsys.NewHeap(),
		baseCapacity: baseCapacity,
		generation:   1, // 0 marks the zero Handle
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns size bytes from the arena.
//
// The result has len == cap == size and does not overlap any other live
// allocation. Non-positive sizes fail with block.ErrInvalidSize.
func (a *Arena) Allocate(size int) ([]byte, error) {
	return a.alloc(size, 1)
}

// AllocateAligned returns size bytes whose first byte is aligned to align.
// A non-positive align means no alignment; otherwise it must be a power of two.
func (a *Arena) AllocateAligned(size, align int) ([]byte, error) {
	if align <= 0 {
		align = 1
	}
	if !conv.IsPowerOfTwo(align) {
		a.stats.FailedAllocs++
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", block.ErrInvalidAlignment, align)
	}
	return a.alloc(size, align)
}

// AllocateHandle allocates size bytes and returns a Handle to them.
func (a *Arena) AllocateHandle(size int) (Handle, error) {
	if size <= 0 {
		a.stats.FailedAllocs++
		return Handle{}, fmt.Errorf("%w: %d", block.ErrInvalidSize, size)
	}

	idx, err := a.reserve(size, 1)
	if err != nil {
		a.stats.FailedAllocs++
		return Handle{}, err
	}

	off := a.blocks[idx].Usage()
	a.commit(idx, size, 1)

	return Handle{gen: a.generation, block: idx, offset: off, size: size}, nil
}

// Resolve returns the bytes a Handle refers to.
func (a *Arena) Resolve(h Handle) ([]byte, error) {
	if h.gen != a.generation || h.block >= len(a.blocks) {
		return nil, ErrStaleHandle
	}
	return a.blocks[h.block].At(h.offset, h.size), nil
}

func (a *Arena) alloc(size, align int) ([]byte, error) {
	if size <= 0 {
		a.stats.FailedAllocs++
		return nil, fmt.Errorf("%w: %d", block.ErrInvalidSize, size)
	}

	idx, err := a.reserve(size, align)
	if err != nil {
		a.stats.FailedAllocs++
		return nil, err
	}
	return a.commit(idx, size, align), nil
}

// reserve returns the index of the first block at or after the current one
// that fits size at align, appending a new block if none does. It does not
// move the current index or touch any usage.
func (a *Arena) reserve(size, align int) (int, error) {
	if len(a.blocks) > 0 {
		i := a.end
		for !a.blocks[i].FitsAligned(size, align) && i+1 < len(a.blocks) {
			i++
		}
		if a.blocks[i].FitsAligned(size, align) {
			return i, nil
		}
	}

	need := size
	if align > 1 {
		var err error
		if need, err = conv.AddInt(size, align-1); err != nil {
			return 0, fmt.Errorf("%w: %d bytes aligned to %d: %w", block.ErrInvalidAlignment, size, align, err)
		}
	}

	b, err := block.Acquire(a.sys, need, a.baseCapacity)
	if err != nil {
		return 0, err
	}

	a.blocks = append(a.blocks, b)
	idx := len(a.blocks) - 1

	a.stats.BlocksAcquired++
	a.stats.ActiveBlocks++
	a.stats.BytesReserved += uint64(b.Capacity())

	if a.onAcquire != nil {
		a.onAcquire(idx, b.Capacity())
	}
	return idx, nil
}

func (a *Arena) commit(idx, size, align int) []byte {
	a.end = idx

	p, pad := a.blocks[idx].BumpAligned(size, align)

	a.stats.BytesUsed += uint64(size)
	a.stats.BytesWasted += uint64(pad)
	a.stats.TotalAllocs++
	return p
}

// ReleaseAll returns every block to the memory system, head first.
//
// Release is best effort: a failing block does not stop the walk, and every
// failure is reported through errors.Join in chain order. The arena is empty
// and reusable afterwards either way. On an empty arena it is a no-op.
func (a *Arena) ReleaseAll() error {
	if len(a.blocks) == 0 {
		return nil
	}

	var errs []error
	for i, b := range a.blocks {
		if err := b.Release(); err != nil {
			errs = append(errs, fmt.Errorf("arena: block %d: %w", i, err))
		}
		a.blocks[i] = nil
	}

	a.stats.BlocksReleased += uint64(len(a.blocks))
	a.blocks = a.blocks[:0]
	a.end = 0
	a.nextGeneration()

	a.stats.ActiveBlocks = 0
	a.stats.BytesReserved = 0
	a.stats.BytesUsed = 0
	a.stats.BytesWasted = 0

	return errors.Join(errs...)
}

// Reset rewinds every block to empty and the current index to the head,
// keeping all blocks for reuse. Previous allocations become invalid.
func (a *Arena) Reset() {
	for _, b := range a.blocks {
		b.Reset()
	}
	a.end = 0
	a.nextGeneration()

	// Clear usage stats (historical counts like BlocksAcquired/TotalAllocs unchanged)
	a.stats.BytesUsed = 0
	a.stats.BytesWasted = 0
}

func (a *Arena) nextGeneration() {
	a.generation++
	if a.generation == 0 {
		a.generation = 1
	}
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Blocks returns a snapshot of the chain in order.
func (a *Arena) Blocks() []BlockInfo {
	infos := make([]BlockInfo, len(a.blocks))
	for i, b := range a.blocks {
		infos[i] = BlockInfo{
			Index:    i,
			Usage:    b.Usage(),
			Capacity: b.Capacity(),
			Current:  i == a.end,
		}
	}
	return infos
}

// Len returns the number of blocks in the chain.
func (a *Arena) Len() int {
	return len(a.blocks)
}

// Current returns the index of the current block, or -1 when the arena is empty.
func (a *Arena) Current() int {
	if len(a.blocks) == 0 {
		return -1
	}
	return a.end
}

// Generation returns the current generation of the arena.
func (a *Arena) Generation() uint32 {
	return a.generation
}

// BaseCapacity returns the capacity new blocks start growing from.
func (a *Arena) BaseCapacity() int {
	return a.baseCapacity
}

// Usage returns the memory usage percentage.
func (a *Arena) Usage() float64 {
	if a.stats.BytesReserved == 0 {
		return 0
	}
	return float64(a.stats.BytesUsed) / float64(a.stats.BytesReserved) * 100
}

func (a *Arena) String() string {
	return fmt.Sprintf(
		"Arena{blocks: %d, reserved: %.2f KB, used: %.2f KB, wasted: %d B, usage: %.1f%%, allocs: %d}",
		a.stats.ActiveBlocks,
		float64(a.stats.BytesReserved)/1024,
		float64(a.stats.BytesUsed)/1024,
		a.stats.BytesWasted,
		a.Usage(),
		a.stats.TotalAllocs,
	)
}
