// Package memsys defines the memory system that backs arena blocks.
//
// A System hands out raw, aligned regions and takes them back given the
// exact size and alignment used at acquisition. Three implementations are
// provided, plus a fault-injecting wrapper for tests:
//
//   - Heap: Go heap slices, aligned by over-allocation. The default.
//   - OffHeap: one anonymous mapping per region, unmapped on release.
//     Payload bytes are invisible to the garbage collector.
//   - Budget: wraps another System and charges a resource.Controller,
//     turning a configured byte limit into ErrExhausted.
//   - Faulty: wraps another System and fails acquisitions or releases
//     on demand.
//
// OffHeap (and Budget over it) also implements Discarder, which lets a block
// drop the resident pages of a rewound payload without unmapping it.
//
// Implementations are safe for concurrent use so that one System can back
// many arenas.
package memsys
