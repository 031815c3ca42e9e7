// Package conv provides checked integer arithmetic and conversions for
// memory layout math.
//
// Block sizes are computed as header + capacity and capacities grow by
// doubling, so every step can overflow on hostile or simply huge requests.
// These helpers report overflow as an error instead of wrapping around.
//
// For arithmetic that is provably bounded (loop indices, values already
// validated against a block's capacity), use plain operators instead.
package conv
