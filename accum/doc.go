// Package accum provides the dense lineage × query counter table that
// bipartition scoring accumulates into.
//
// Counters are 64 bits wide. A single pass increments a cell at most once per
// bipartition, so overflow can only arise when merging tables; Merge uses
// checked addition and reports ErrCounterOverflow instead of wrapping.
package accum
