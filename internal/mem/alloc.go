package mem

import (
	"math"
	"unsafe"
)

// AllocAligned allocates a zeroed byte slice of the given size whose first byte
// lies on an address divisible by align. align must be a power of two.
//
// It returns nil when size is not positive, align is not a power of two, or
// the runtime cannot represent an allocation of that size.
// The returned slice has len == cap == size.
func AllocAligned(size, align int) (buf []byte) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 || size > math.MaxInt-(align-1) {
		return nil
	}

	// make panics with "len out of range" above the runtime's allocation limit
	defer func() {
		if recover() != nil {
			buf = nil
		}
	}()

	if align == 1 {
		return make([]byte, size)
	}

	// We need enough space to shift the start pointer up to align-1 bytes
	raw := make([]byte, size+align-1)

	addr := uintptr(unsafe.Pointer(&raw[0])) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := int((uintptr(align) - (addr & mask)) & mask)

	return raw[offset : offset+size : offset+size]
}

// IsAligned reports whether the first byte of b lies on an align boundary.
// Empty slices are never aligned.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 || align <= 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&b[0]))%uintptr(align) == 0 //nolint:gosec // unsafe is required for memory alignment
}
