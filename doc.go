// Package bumparena provides a region (arena) allocator for Go.
//
// An Arena hands out raw byte slices by bumping a cursor through a chain of
// blocks and returns all of its memory at once. It suits many short-lived
// values that share one lifetime: a parse pass, a frame, a request.
//
// # Quick Start
//
//	a := bumparena.New()
//	defer a.ReleaseAll()
//
//	buf, err := a.Alloc(128)
//	if err != nil { ... }
//
// # Blocks
//
// Blocks start at the default capacity (8 KiB unless WithDefaultCapacity is
// given) and double until they fit the request that created them. A request
// that does not fit the current block first looks at blocks further down the
// chain, then appends a new block at the tail. Blocks are never moved or
// resized, so a returned slice stays valid until ReleaseAll or Reset.
//
// # Release
//
// There is no per-allocation free. ReleaseAll returns every block to the
// memory system; Reset keeps the blocks and rewinds them. Either one ends the
// lifetime of every slice handed out before it. Handles returned by
// AllocHandle detect this and fail to resolve afterwards.
//
// # Memory Systems
//
// Blocks come from a MemorySystem: the Go heap by default, anonymous mappings
// with WithOffHeap, optionally capped by WithMemoryLimit.
//
//	a := bumparena.New(
//	    bumparena.WithDefaultCapacity(64*1024),
//	    bumparena.WithOffHeap(),
//	    bumparena.WithMemoryLimit(64<<20),
//	)
//
// # Errors
//
// Allocation failures are returned as *AllocError and match ErrInvalidSize,
// ErrInvalidAlignment or ErrOutOfMemory with errors.Is. A failed allocation
// leaves the arena exactly as it was.
//
// # Thread Safety
//
// An Arena is not safe for concurrent use. Give each goroutine its own arena
// or serialize access externally.
package bumparena
