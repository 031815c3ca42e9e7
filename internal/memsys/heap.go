package memsys

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/bumparena/internal/mem"
)

// Heap is a System backed by the Go heap.
//
// Released regions are dropped and reclaimed by the garbage collector once
// no slice references them. The zero value is ready to use.
type Heap struct {
	regions atomic.Int64
	bytes   atomic.Int64
}

// NewHeap returns a heap-backed System.
func NewHeap() *Heap {
	return &Heap{}
}

// Acquire implements System.
func (h *Heap) Acquire(size, align int) ([]byte, error) {
	if err := validate(size, align); err != nil {
		return nil, err
	}

	region := mem.AllocAligned(size, align)
	if region == nil {
		return nil, fmt.Errorf("%w: heap allocation of %d bytes", ErrExhausted, size)
	}

	h.regions.Add(1)
	h.bytes.Add(int64(size))
	return region, nil
}

// Release implements System.
func (h *Heap) Release(region []byte, size, align int) error {
	if len(region) == 0 {
		return ErrNilRegion
	}
	if err := validate(size, align); err != nil {
		return err
	}
	if len(region) != size || !mem.IsAligned(region, align) {
		return fmt.Errorf("%w: region of %d bytes released as %d/%d", ErrSizeMismatch, len(region), size, align)
	}

	h.regions.Add(-1)
	h.bytes.Add(-int64(size))
	return nil
}

// Outstanding returns the number of regions and bytes acquired but not yet released.
func (h *Heap) Outstanding() (regions, bytes int64) {
	return h.regions.Load(), h.bytes.Load()
}
