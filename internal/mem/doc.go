// Package mem provides aligned allocation on the Go heap.
//
// # Aligned Allocation
//
// AllocAligned over-allocates by align-1 bytes and returns the sub-slice that
// starts on the first aligned address. The backing array stays reachable
// through the returned slice, so the GC keeps it alive as long as any
// sub-slice of it is referenced.
package mem
