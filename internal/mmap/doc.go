// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Overview
//
// MapAnon() creates read-write anonymous mappings outside the Go garbage
// collector's control. The arena's off-heap memory system obtains one
// mapping per block and unmaps it when the block is released.
//
// # Usage
//
//	m, err := mmap.MapAnon(64 * 1024)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
//	// Give whole pages back to the kernel without unmapping
//	m.Discard(0, len(data))
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) MADV_DONTNEED for Discard
//   - Windows: VirtualAlloc/VirtualFree (Discard is a no-op)
//
// Mappings are always page aligned; PageSize reports the platform page size.
//
// # Thread Safety
//
// Close() is idempotent and protected by atomic operations. Callers must
// ensure nothing touches Bytes() after Close() returns.
package mmap
