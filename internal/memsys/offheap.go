package memsys

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/bumparena/internal/mmap"
)

// OffHeap is a System backed by anonymous memory mappings.
//
// Every region is its own mapping, so regions are page aligned and
// alignments above the page size are rejected. Released regions are unmapped
// immediately; touching one afterwards faults.
type OffHeap struct {
	mu       sync.Mutex
	mappings map[uintptr]*mmap.Mapping
	pageSize int
}

// NewOffHeap returns a mapping-backed System.
func NewOffHeap() *OffHeap {
	return &OffHeap{
		mappings: make(map[uintptr]*mmap.Mapping),
		pageSize: mmap.PageSize(),
	}
}

// Acquire implements System.
func (o *OffHeap) Acquire(size, align int) ([]byte, error) {
	if err := validate(size, align); err != nil {
		return nil, err
	}
	if align > o.pageSize {
		return nil, fmt.Errorf("%w: %d exceeds page size %d", ErrInvalidAlignment, align, o.pageSize)
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: map %d bytes: %w", ErrExhausted, size, err)
	}
	region := m.Bytes()

	o.mu.Lock()
	o.mappings[baseAddr(region)] = m
	o.mu.Unlock()

	return region, nil
}

// Release implements System.
func (o *OffHeap) Release(region []byte, size, align int) error {
	if len(region) == 0 {
		return ErrNilRegion
	}
	if err := validate(size, align); err != nil {
		return err
	}

	key := baseAddr(region)

	o.mu.Lock()
	m, ok := o.mappings[key]
	if !ok {
		o.mu.Unlock()
		return ErrUnknownRegion
	}
	if m.Size() != size || len(region) != size {
		o.mu.Unlock()
		return fmt.Errorf("%w: mapping of %d bytes released as %d", ErrSizeMismatch, m.Size(), size)
	}
	delete(o.mappings, key)
	o.mu.Unlock()

	if err := m.Close(); err != nil {
		return fmt.Errorf("memsys: unmap %d bytes: %w", size, err)
	}
	return nil
}

// Discard implements Discarder. Only whole pages inside [off, off+n) are
// given back to the kernel.
func (o *OffHeap) Discard(region []byte, off, n int) error {
	if len(region) == 0 {
		return ErrNilRegion
	}

	o.mu.Lock()
	m, ok := o.mappings[baseAddr(region)]
	o.mu.Unlock()
	if !ok {
		return ErrUnknownRegion
	}
	return m.Discard(off, n)
}

// Outstanding returns the number of live mappings.
func (o *OffHeap) Outstanding() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.mappings)
}

func baseAddr(region []byte) uintptr {
	return uintptr(unsafe.Pointer(&region[0])) //nolint:gosec // mappings are keyed by base address
}
