// Package numbering assigns global tip indices to the trees of a forest.
//
// The index space is laid out as lineages [0, L), queries [L, L+Q) and
// all other taxa [L+Q, N). Lineage and query indices follow the sorted
// registries. Other taxa are numbered in the tip order of the first tree,
// which serves as the canonical tree; every other tree is remapped to it by
// label.
package numbering

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/split"
	"github.com/hupe1980/splitmatch/taxa"
)

var (
	// ErrInconsistentTipNumbering is returned when a tree's tip set differs
	// from the canonical tree.
	ErrInconsistentTipNumbering = errors.New("inconsistent tip numbering")

	// ErrMissingTaxon is returned when a lineage or query label does not
	// occur in the canonical tree.
	ErrMissingTaxon = errors.New("taxon missing from tree")

	// ErrEmptyForest is returned when there are no trees to number.
	ErrEmptyForest = split.ErrEmptyForest
)

// TipError describes a tip that could not be numbered.
type TipError struct {
	Tree  int
	Label string
	Err   error
}

func (e *TipError) Error() string {
	return fmt.Sprintf("tree %d: tip %q: %v", e.Tree, e.Label, e.Err)
}

func (e *TipError) Unwrap() error { return e.Err }

// Numbering maps tip labels to global indices.
type Numbering struct {
	labels   []string
	index    map[string]int
	lineages int
	queries  int
}

// Normalize numbers the tips of every tree in place.
// Both registries must be sorted.
func Normalize(trees []*phylo.Tree, lineages, queries *taxa.Registry) (*Numbering, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyForest
	}

	n, err := canonical(trees[0], lineages, queries)
	if err != nil {
		return nil, err
	}

	for i, t := range trees {
		if err := n.apply(i, t); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func canonical(t *phylo.Tree, lineages, queries *taxa.Registry) (*Numbering, error) {
	l, q := lineages.Size(), queries.Size()
	n := &Numbering{
		labels:   make([]string, l+q, max(l+q, t.TipCount())),
		index:    make(map[string]int, t.TipCount()),
		lineages: l,
		queries:  q,
	}

	for _, label := range queries.Labels() {
		if lineages.Contains(label) {
			return nil, fmt.Errorf("%w: %q is both a lineage and a query", taxa.ErrDuplicateLabel, label)
		}
	}

	for _, id := range t.Tips() {
		label := t.Node(id).Label

		idx, err := lineages.FindLabelIndex(label)
		if err == nil {
			n.assign(label, idx)
			continue
		}
		if !errors.Is(err, taxa.ErrLabelNotFound) {
			return nil, err
		}

		idx, err = queries.FindLabelIndex(label)
		if err == nil {
			n.assign(label, l+idx)
			continue
		}
		if !errors.Is(err, taxa.ErrLabelNotFound) {
			return nil, err
		}

		n.index[label] = len(n.labels)
		n.labels = append(n.labels, label)
	}

	for i := range l + q {
		if n.labels[i] == "" {
			var label string
			if i < l {
				label = lineages.Label(i)
			} else {
				label = queries.Label(i - l)
			}
			return nil, &TipError{Tree: 0, Label: label, Err: ErrMissingTaxon}
		}
	}
	return n, nil
}

func (n *Numbering) assign(label string, idx int) {
	n.labels[idx] = label
	n.index[label] = idx
}

// apply writes global indices into the tips of t and verifies that they
// cover [0, N) exactly once.
func (n *Numbering) apply(tree int, t *phylo.Tree) error {
	if t.TipCount() != len(n.labels) {
		return fmt.Errorf("%w: tree %d has %d tips, want %d",
			ErrInconsistentTipNumbering, tree, t.TipCount(), len(n.labels))
	}

	seen := roaring.New()
	for _, id := range t.Tips() {
		node := t.Node(id)
		idx, ok := n.index[node.Label]
		if !ok {
			return &TipError{Tree: tree, Label: node.Label, Err: ErrInconsistentTipNumbering}
		}
		if !seen.CheckedAdd(uint32(idx)) {
			return &TipError{Tree: tree, Label: node.Label, Err: ErrInconsistentTipNumbering}
		}
		node.Index = idx
	}

	if seen.GetCardinality() != uint64(len(n.labels)) {
		return fmt.Errorf("%w: tree %d covers %d of %d indices",
			ErrInconsistentTipNumbering, tree, seen.GetCardinality(), len(n.labels))
	}
	return nil
}

// Index returns the global index of label.
func (n *Numbering) Index(label string) (int, bool) {
	idx, ok := n.index[label]
	return idx, ok
}

// Label returns the label at global index i.
func (n *Numbering) Label(i int) string { return n.labels[i] }

// Len returns N, the size of the index space.
func (n *Numbering) Len() int { return len(n.labels) }

// Lineages returns L.
func (n *Numbering) Lineages() int { return n.lineages }

// Queries returns Q.
func (n *Numbering) Queries() int { return n.queries }

// Others returns the labels of taxa that are neither lineages nor queries,
// in index order.
func (n *Numbering) Others() []string {
	return append([]string(nil), n.labels[n.lineages+n.queries:]...)
}
