// Package phylo is the in-memory tree model shared by parsing, tip numbering
// and bipartition generation.
//
// Nodes are stored in an order where every parent precedes its children
// (node 0 is the root), so iterating backwards visits children first.
// Tips carry a global tip index once the forest has been numbered.
package phylo
