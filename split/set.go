package split

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/taxa"
)

// Set holds all internal-edge bipartitions of one tree.
type Set struct {
	buf    []uint64
	stride int
	count  int
	tips   int
}

// NewSet generates the bipartitions of a numbered tree.
//
// Every internal edge contributes one bipartition; tip edges are trivial and
// skipped. For a tree rooted on a node of degree two the two root edges form
// a single edge of the unrooted tree and produce one bipartition.
func NewSet(t *phylo.Tree) (*Set, error) {
	n := t.TipCount()
	stride := wordCount(n)

	// clade[id] holds the tips below node id.
	clades := make([]uint64, t.Len()*stride)
	clade := func(id int) []uint64 {
		return clades[id*stride : (id+1)*stride]
	}

	for _, id := range t.Tips() {
		idx := t.Node(id).Index
		if idx == phylo.NoIndex {
			return nil, fmt.Errorf("%w: tip %q has no index", ErrInvalidNumbering, t.Node(id).Label)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: tip %q has index %d in a %d-tip tree", ErrInvalidNumbering, t.Node(id).Label, idx, n)
		}
		w := clade(id)
		w[idx/wordBits] |= 1 << (uint(idx) % wordBits)
	}

	// Parents precede children, so a reverse sweep is a postorder.
	for id := t.Len() - 1; id > 0; id-- {
		parent := clade(t.Node(id).Parent)
		for i, w := range clade(id) {
			if parent[i]&w != 0 {
				return nil, fmt.Errorf("%w: duplicate tip index below node %d", ErrInvalidNumbering, id)
			}
			parent[i] |= w
		}
	}

	root := t.Root()
	skip := -1
	if len(root.Children) == 2 {
		skip = root.Children[1]
	}

	var emit []int
	for id := 1; id < t.Len(); id++ {
		if t.Node(id).Tip() || id == skip {
			continue
		}
		size := 0
		for _, w := range clade(id) {
			size += bits.OnesCount64(w)
		}
		if size < 2 || size > n-2 {
			continue
		}
		emit = append(emit, id)
	}

	s := &Set{
		buf:    make([]uint64, len(emit)*stride),
		stride: stride,
		count:  len(emit),
		tips:   n,
	}
	for i, id := range emit {
		copy(s.buf[i*stride:(i+1)*stride], clade(id))
	}
	return s, nil
}

// FromWords creates a set over an existing buffer of count bipartitions of
// ceil(tips/64) words each. The buffer is owned by the set afterwards.
func FromWords(buf []uint64, tips int) (*Set, error) {
	stride := wordCount(tips)
	if tips <= 0 || len(buf)%stride != 0 {
		return nil, fmt.Errorf("%w: %d words for %d-tip bipartitions", ErrIndexOutOfRange, len(buf), tips)
	}
	if r := tips % wordBits; r != 0 {
		high := ^uint64(0) << uint(r)
		for i := stride - 1; i < len(buf); i += stride {
			if buf[i]&high != 0 {
				return nil, fmt.Errorf("%w: bits set beyond tip %d", ErrIndexOutOfRange, tips)
			}
		}
	}
	return &Set{
		buf:    buf,
		stride: stride,
		count:  len(buf) / stride,
		tips:   tips,
	}, nil
}

// SplitCount returns the number of bipartitions.
func (s *Set) SplitCount() int { return s.count }

// TipCount returns the number of tips of the tree.
func (s *Set) TipCount() int { return s.tips }

// Bytes returns the size of the bipartition buffer in bytes.
func (s *Set) Bytes() int64 { return int64(len(s.buf)) * 8 }

// At returns the i-th bipartition.
func (s *Set) At(i int) Bipartition {
	return Bipartition{
		words: s.buf[i*s.stride : (i+1)*s.stride : (i+1)*s.stride],
		n:     s.tips,
	}
}

// All iterates the bipartitions in order.
func (s *Set) All() iter.Seq2[int, Bipartition] {
	return func(yield func(int, Bipartition) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// Accumulate scores every bipartition into table. The first failing
// bipartition aborts the pass.
func (s *Set) Accumulate(table *accum.Table, lineages, queries *taxa.Mask) error {
	if queries.Len() > s.tips {
		return fmt.Errorf("%w: groups span %d tips, tree has %d", ErrIndexOutOfRange, queries.Len(), s.tips)
	}
	for i, b := range s.All() {
		if err := b.Score(table, lineages, queries); err != nil {
			return fmt.Errorf("split %d: %w", i, err)
		}
	}
	return nil
}
