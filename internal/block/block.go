package block

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/bumparena/internal/conv"
	"github.com/hupe1980/bumparena/internal/memsys"
)

// DefaultCapacity is the default payload capacity of a block (8 KiB).
const DefaultCapacity = 8 * 1024

var (
	// ErrInvalidSize is returned for a zero (or negative) requested size.
	ErrInvalidSize = errors.New("block: invalid size")
	// ErrInvalidAlignment is returned when header+capacity and the header
	// alignment cannot be represented by the memory system.
	ErrInvalidAlignment = errors.New("block: size/alignment not representable")
	// ErrOutOfMemory is returned when the memory system cannot supply a region.
	ErrOutOfMemory = errors.New("block: out of memory")
	// ErrNullPointer is returned when releasing an absent or already released block.
	ErrNullPointer = errors.New("block: release of nil block")
)

// header lives at offset 0 of every block region.
type header struct {
	usage    uint64
	capacity uint64
}

const (
	// HeaderSize is the size of the in-region block header.
	HeaderSize = int(unsafe.Sizeof(header{}))
	// HeaderAlign is the alignment every block region is acquired with.
	HeaderAlign = int(unsafe.Alignof(header{}))
	// PayloadOffset is the distance from the region start to payload byte 0.
	PayloadOffset = HeaderSize
)

// Block is an opaque handle to one acquired region.
type Block struct {
	sys    memsys.System
	region []byte
	hdr    *header
}

// GrowCapacity returns the smallest base*2^k that is >= requested.
// A non-positive base selects DefaultCapacity.
func GrowCapacity(requested, base int) (int, error) {
	if requested <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, requested)
	}
	if base <= 0 {
		base = DefaultCapacity
	}

	capacity := base
	for requested > capacity {
		next, err := conv.DoubleInt(capacity)
		if err != nil {
			return 0, fmt.Errorf("%w: capacity for %d bytes: %w", ErrInvalidAlignment, requested, err)
		}
		capacity = next
	}
	return capacity, nil
}

// Acquire obtains a new block from sys whose capacity can hold requested bytes.
func Acquire(sys memsys.System, requested, base int) (*Block, error) {
	capacity, err := GrowCapacity(requested, base)
	if err != nil {
		return nil, err
	}

	total, err := conv.AddInt(HeaderSize, capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: header+capacity: %w", ErrInvalidAlignment, err)
	}

	if sys == nil {
		return nil, fmt.Errorf("%w: no memory system", ErrOutOfMemory)
	}

	region, err := sys.Acquire(total, HeaderAlign)
	if err != nil {
		if errors.Is(err, memsys.ErrInvalidAlignment) || errors.Is(err, memsys.ErrInvalidSize) {
			return nil, fmt.Errorf("%w: %d bytes aligned to %d: %w", ErrInvalidAlignment, total, HeaderAlign, err)
		}
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrOutOfMemory, total, err)
	}
	if len(region) != total {
		return nil, fmt.Errorf("%w: memory system returned %d of %d bytes", ErrOutOfMemory, len(region), total)
	}

	hdr := (*header)(unsafe.Pointer(&region[0])) //nolint:gosec // header is stored in-region
	hdr.usage = 0
	hdr.capacity = uint64(capacity)

	return &Block{
		sys:    sys,
		region: region,
		hdr:    hdr,
	}, nil
}

// Release returns the block's region to its memory system.
//
// The handle is cleared before the region is handed back, so a second
// Release reports ErrNullPointer instead of releasing twice. Slices obtained
// from Bump must not be used afterwards.
func (b *Block) Release() error {
	if b == nil || b.hdr == nil {
		return ErrNullPointer
	}

	capacity, err := conv.Uint64ToInt(b.hdr.capacity)
	if err != nil {
		return fmt.Errorf("%w: corrupt capacity: %w", ErrInvalidAlignment, err)
	}
	total := HeaderSize + capacity

	region, sys := b.region, b.sys
	b.region, b.hdr, b.sys = nil, nil, nil

	if err := sys.Release(region, total, HeaderAlign); err != nil {
		return fmt.Errorf("block: release %d bytes: %w", total, err)
	}
	return nil
}

// Usage returns the payload bytes handed out so far.
func (b *Block) Usage() int {
	return int(b.hdr.usage)
}

// Capacity returns the payload size of the block.
func (b *Block) Capacity() int {
	return int(b.hdr.capacity)
}

// Remaining returns the payload bytes still available.
func (b *Block) Remaining() int {
	return int(b.hdr.capacity - b.hdr.usage)
}

// Fits reports whether n more bytes fit into the payload.
func (b *Block) Fits(n int) bool {
	return n >= 0 && n <= b.Remaining()
}

// PaddingFor returns the bytes needed to align the next payload byte to align.
func (b *Block) PaddingFor(align int) int {
	if align <= 1 {
		return 0
	}
	next := uintptr(unsafe.Pointer(&b.region[0])) + uintptr(PayloadOffset) + uintptr(b.hdr.usage) //nolint:gosec // address arithmetic only
	mask := uintptr(align - 1)
	return int((uintptr(align) - next&mask) & mask)
}

// FitsAligned reports whether n bytes fit after aligning the cursor to align.
func (b *Block) FitsAligned(n, align int) bool {
	return n >= 0 && n <= b.Remaining()-b.PaddingFor(align)
}

// Bump hands out the next n payload bytes. The caller must check Fits first.
func (b *Block) Bump(n int) []byte {
	start := PayloadOffset + int(b.hdr.usage)
	end := start + n
	b.hdr.usage += uint64(n)
	return b.region[start:end:end]
}

// BumpAligned skips padding so the result is aligned to align, then hands
// out n bytes. It returns the slice and the padding consumed. The caller
// must check FitsAligned first.
func (b *Block) BumpAligned(n, align int) ([]byte, int) {
	pad := b.PaddingFor(align)
	b.hdr.usage += uint64(pad)
	return b.Bump(n), pad
}

// Reset rewinds the usage cursor to the start of the payload. If the memory
// system is a memsys.Discarder, the whole pages that were handed out are
// given back to it and read as undefined afterwards. The header page is
// never discarded.
func (b *Block) Reset() {
	used := int(b.hdr.usage)
	b.hdr.usage = 0

	if d, ok := b.sys.(memsys.Discarder); ok && used > 0 {
		_ = d.Discard(b.region, PayloadOffset, used) // advisory; the block stays usable either way
	}
}

// At returns the n bytes at payload offset off. It does no bounds checking
// beyond what slicing does.
func (b *Block) At(off, n int) []byte {
	start := PayloadOffset + off
	return b.region[start : start+n : start+n]
}
