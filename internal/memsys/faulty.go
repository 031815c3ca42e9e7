package memsys

import (
	"errors"
	"sync"
)

// ErrInjected is the default error returned by a Faulty system.
var ErrInjected = errors.New("memsys: injected fault")

// Faulty is a System wrapper that can inject acquisition and release
// failures. It is meant for tests of callers that must survive a failing
// memory system.
type Faulty struct {
	System System

	mu           sync.Mutex
	failAcquire  bool
	acquireLimit int64 // bytes; -1 for no limit
	acquired     int64
	failRelease  map[int]bool
	releases     int

	// Err is returned for injected failures. Nil selects ErrInjected.
	Err error
}

// NewFaulty wraps inner (or a new Heap if nil) without any faults armed.
func NewFaulty(inner System) *Faulty {
	if inner == nil {
		inner = NewHeap()
	}
	return &Faulty{
		System:       inner,
		acquireLimit: -1,
		failRelease:  make(map[int]bool),
	}
}

// SetFailAcquire makes every acquisition fail while on is true.
func (f *Faulty) SetFailAcquire(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAcquire = on
}

// SetAcquireLimit fails acquisitions that would take the total bytes
// acquired through f past limit. A negative limit disables the check.
func (f *Faulty) SetAcquireLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquireLimit = limit
}

// FailReleaseAt makes the n-th Release call (counting from 0) fail. The
// region is then kept by the inner system.
func (f *Faulty) FailReleaseAt(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRelease[n] = true
}

// Releases returns the number of Release calls seen so far.
func (f *Faulty) Releases() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases
}

// Acquired returns the total bytes successfully acquired so far.
func (f *Faulty) Acquired() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acquired
}

// Acquire implements System.
func (f *Faulty) Acquire(size, align int) ([]byte, error) {
	f.mu.Lock()
	exceeded := f.failAcquire || (f.acquireLimit >= 0 && f.acquired+int64(size) > f.acquireLimit)
	f.mu.Unlock()

	if exceeded {
		return nil, f.err()
	}

	region, err := f.System.Acquire(size, align)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.acquired += int64(size)
	f.mu.Unlock()
	return region, nil
}

// Release implements System.
func (f *Faulty) Release(region []byte, size, align int) error {
	f.mu.Lock()
	n := f.releases
	f.releases++
	fail := f.failRelease[n]
	f.mu.Unlock()

	if fail {
		return f.err()
	}
	return f.System.Release(region, size, align)
}

func (f *Faulty) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}
