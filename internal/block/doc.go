// Package block implements the unit of backing storage for an arena.
//
// A block is one contiguous region obtained from a memsys.System. The first
// HeaderSize bytes of the region hold the block header (usage and capacity);
// the payload starts at PayloadOffset and is exactly Capacity bytes long.
//
//	region:  [ header | payload ....................... ]
//	          0        PayloadOffset        PayloadOffset+capacity
//
// Capacity is chosen by GrowCapacity: the default capacity doubled until it
// holds the request that triggered the block. Capacity never changes after
// Acquire. Release recomputes the region size from the capacity stored in
// the header, so acquisition and release always agree.
//
// Blocks do not link to each other; the arena owns the chain.
package block
