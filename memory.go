package bumparena

import (
	"github.com/hupe1980/bumparena/internal/memsys"
)

// MemorySystem is the allocator blocks are acquired from and released to.
//
// Acquire must return exactly size bytes aligned to align. Release receives
// the same size and alignment that were used at acquisition.
type MemorySystem = memsys.System

// HeapMemory returns a MemorySystem backed by the Go heap.
func HeapMemory() MemorySystem {
	return memsys.NewHeap()
}

// OffHeapMemory returns a MemorySystem backed by anonymous memory mappings.
// Released blocks are unmapped immediately.
func OffHeapMemory() MemorySystem {
	return memsys.NewOffHeap()
}
