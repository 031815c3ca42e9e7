// Package arena provides the region allocator core: a chain of blocks served
// by bump allocation and released all at once.
//
// # Chain
//
// The arena owns its blocks in an ordered slice; index 0 is the head. The
// current block is tracked by index and only moves forward. When the current
// block cannot fit a request, the arena walks forward to reuse capacity left
// in later blocks (created for earlier, larger requests or kept by Reset)
// before it appends a new block at the tail.
//
// # Failure Atomicity
//
// A failed allocation leaves the current index and every block's usage
// untouched: the walk runs on a local cursor and nothing is committed until
// the request is known to fit.
//
// # Lifetime
//
// Slices returned by Allocate are valid until ReleaseAll or Reset. Handles
// carry the arena generation and fail to resolve once it moves on.
//
// # Concurrency Model
//
// None. An Arena must have a single owner or be externally serialized.
package arena
