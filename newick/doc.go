// Package newick reads phylogenetic trees in Newick format.
//
// Parsing is delegated to github.com/evolbioinfo/gotree; the parsed trees are
// converted into phylo.Tree. A tree set is a text stream with one tree per
// line. Blank lines are ignored. Lines are parsed concurrently, but the
// returned forest keeps input order.
package newick
