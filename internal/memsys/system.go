package memsys

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for non-positive region sizes.
	ErrInvalidSize = errors.New("memsys: invalid region size")
	// ErrInvalidAlignment is returned when an alignment is not a positive power
	// of two or cannot be honored by the system.
	ErrInvalidAlignment = errors.New("memsys: invalid alignment")
	// ErrExhausted is returned when the system cannot satisfy an acquisition.
	ErrExhausted = errors.New("memsys: memory exhausted")
	// ErrSizeMismatch is returned when Release receives a size or alignment that
	// does not match the region.
	ErrSizeMismatch = errors.New("memsys: size or alignment mismatch on release")
	// ErrNilRegion is returned when Release receives an empty region.
	ErrNilRegion = errors.New("memsys: release of empty region")
	// ErrUnknownRegion is returned when Release receives a region the system
	// did not hand out (or already took back).
	ErrUnknownRegion = errors.New("memsys: release of unknown region")
)

// System is the underlying memory system consumed by arena blocks.
type System interface {
	// Acquire returns a region of exactly size bytes whose first byte is
	// aligned to align.
	Acquire(size, align int) ([]byte, error)
	// Release returns a region obtained from Acquire. size and align must be
	// the values used at acquisition.
	Release(region []byte, size, align int) error
}

// Discarder is implemented by systems that can drop the physical backing of
// part of a live region without releasing it. Contents of the discarded
// range are undefined afterwards.
type Discarder interface {
	Discard(region []byte, off, n int) error
}

func validate(size, align int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if align <= 0 || align&(align-1) != 0 {
		return fmt.Errorf("%w: %d is not a power of two", ErrInvalidAlignment, align)
	}
	return nil
}
