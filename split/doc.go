// Package split generates the internal-edge bipartitions of numbered trees and
// scores them against a lineage and a query group.
//
// # Scoring
//
// For a bipartition S and the lineage mask M (bits [0, L)):
//
//	c = popcount(S & M)
//
// S is informative when it separates exactly one lineage from all others,
// that is c == 1 (the lineage is on the 1-side) or c == L-1 (the lineage is
// on the 0-side; for L == 1 this branch does not exist). Every query on the
// same side as the isolated lineage increments table[lineage][query].
//
// With exactly two lineages an informative split isolates both of them at
// once, and both are credited with the queries on their own side. Crediting
// only the c == 1 side would make the result depend on which side of the
// edge is encoded as 1: Score must give a split and its bitwise complement
// the same table update, for every L.
//
// # Storage
//
// A Set owns one contiguous []uint64 buffer holding all bipartitions of a
// tree, ceil(tips/64) words each. A Bipartition is a view into that buffer.
//
// # Concurrency
//
// Forest.Accumulate partitions the forest across workers. Every worker fills
// a private table; the tables are merged with checked addition, so the result
// does not depend on the number of workers.
package split
