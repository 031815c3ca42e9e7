package memsys

import (
	"fmt"

	"github.com/hupe1980/bumparena/internal/resource"
)

// Budget is a System that charges every region against a resource.Controller
// before delegating to an inner System.
type Budget struct {
	inner System
	ctrl  *resource.Controller
}

// NewBudget wraps inner with the given controller. A nil inner uses a Heap.
func NewBudget(inner System, ctrl *resource.Controller) *Budget {
	if inner == nil {
		inner = NewHeap()
	}
	return &Budget{inner: inner, ctrl: ctrl}
}

// Acquire implements System.
func (b *Budget) Acquire(size, align int) ([]byte, error) {
	if err := validate(size, align); err != nil {
		return nil, err
	}

	if err := b.ctrl.AcquireMemory(int64(size)); err != nil {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use: %w",
			ErrExhausted, size, b.ctrl.MemoryUsage(), b.ctrl.MemoryLimit(), err)
	}

	region, err := b.inner.Acquire(size, align)
	if err != nil {
		b.ctrl.ReleaseMemory(int64(size))
		return nil, err
	}
	b.ctrl.ObservePeak()
	return region, nil
}

// Release implements System.
func (b *Budget) Release(region []byte, size, align int) error {
	if err := b.inner.Release(region, size, align); err != nil {
		return err
	}
	b.ctrl.ReleaseMemory(int64(size))
	return nil
}

// Discard implements Discarder by forwarding to the inner system. The budget
// charge is unchanged: the region stays acquired.
func (b *Budget) Discard(region []byte, off, n int) error {
	if d, ok := b.inner.(Discarder); ok {
		return d.Discard(region, off, n)
	}
	return nil
}

// Controller returns the controller charged by this budget.
func (b *Budget) Controller() *resource.Controller {
	return b.ctrl
}
