package bumparena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bumparena/internal/arena"
	"github.com/hupe1980/bumparena/internal/block"
)

var (
	// ErrInvalidSize is returned for zero or negative allocation sizes.
	ErrInvalidSize = block.ErrInvalidSize
	// ErrInvalidAlignment is returned when a size/alignment combination cannot
	// be represented by the memory system.
	ErrInvalidAlignment = block.ErrInvalidAlignment
	// ErrOutOfMemory is returned when the memory system cannot supply a block.
	ErrOutOfMemory = block.ErrOutOfMemory
	// ErrNullPointer is returned when a block release is attempted on an absent block.
	ErrNullPointer = block.ErrNullPointer
	// ErrStaleHandle is returned when resolving a handle from an earlier allocation cycle.
	ErrStaleHandle = arena.ErrStaleHandle
)

// AllocError describes a failed allocation.
//
// The underlying error can be accessed via errors.Unwrap and matches one of
// the sentinel errors with errors.Is.
type AllocError struct {
	Op    string
	Size  int
	Align int
	cause error
}

func (e *AllocError) Error() string {
	if e.Align > 1 {
		return fmt.Sprintf("bumparena: %s %d bytes aligned to %d: %v", e.Op, e.Size, e.Align, e.cause)
	}
	return fmt.Sprintf("bumparena: %s %d bytes: %v", e.Op, e.Size, e.cause)
}

func (e *AllocError) Unwrap() error { return e.cause }

// Kind returns the sentinel error this failure matches, or nil if none does.
func (e *AllocError) Kind() error {
	for _, kind := range []error{ErrInvalidSize, ErrInvalidAlignment, ErrOutOfMemory, ErrNullPointer, ErrStaleHandle} {
		if errors.Is(e.cause, kind) {
			return kind
		}
	}
	return nil
}

func translateError(op string, size, align int, err error) error {
	if err == nil {
		return nil
	}
	return &AllocError{Op: op, Size: size, Align: align, cause: err}
}
