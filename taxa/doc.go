// Package taxa holds the named taxon groups of an analysis and the bit masks
// derived from them.
//
// A Registry is a sorted set of labels. Once sorted, the position of a label
// is its group-local index, and the group occupies a contiguous range of the
// global tip index space:
//
//	[0, L)        lineages
//	[L, L+Q)      queries
//	[L+Q, N)      every other taxon in the trees
//
// A Mask marks such a range. Masks are compared word by word against
// bipartitions, so their word layout matches split.Bipartition.
package taxa
