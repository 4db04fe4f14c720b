package split

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/taxa"
)

const wordBits = taxa.WordBits

func wordCount(n int) int {
	return (n + wordBits - 1) / wordBits
}

// Bipartition is one internal edge's split of a tree's tips. Bit i tells on
// which side of the edge the tip with global index i lies.
//
// A Bipartition does not own its words; they belong to the Set it came from.
type Bipartition struct {
	words []uint64
	n     int
}

// Len returns the number of tips covered by the bipartition.
func (b Bipartition) Len() int { return b.n }

// Words returns the backing words. The slice must not be modified.
func (b Bipartition) Words() []uint64 { return b.words }

// Test reports whether tip i is on the 1-side.
func (b Bipartition) Test(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// Size returns the number of tips on the 1-side.
func (b Bipartition) Size() int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Bitset returns a zero-copy bitset view of the bipartition.
func (b Bipartition) Bitset() *bitset.BitSet {
	return bitset.From(b.words)
}

// PopCountMasked returns popcount(S & m).
func (b Bipartition) PopCountMasked(m *taxa.Mask) (int, error) {
	if m.Len() > b.n {
		return 0, fmt.Errorf("%w: %d-bit mask against %d-tip bipartition", ErrIndexOutOfRange, m.Len(), b.n)
	}
	c := 0
	for i := 0; i < m.WordCount(); i++ {
		c += bits.OnesCount64(b.words[i] & m.Word(i))
	}
	return c, nil
}

// Informative reports whether a masked popcount c isolates a single lineage
// out of l lineages.
func Informative(c, l int) bool {
	return c == 1 || (l > 1 && c == l-1)
}

// Score applies the scoring rule of the package documentation: if the split
// isolates one lineage, every query on that lineage's side is counted in
// table. Uninformative splits leave the table untouched.
//
// lineages must cover [0, L) and queries [L, L+Q) of the global tip index
// space, with the table sized L×Q.
func (b Bipartition) Score(table *accum.Table, lineages, queries *taxa.Mask) error {
	if queries.Len() > b.n {
		return fmt.Errorf("%w: %d-bit query mask against %d-tip bipartition", ErrIndexOutOfRange, queries.Len(), b.n)
	}

	l := lineages.Len()
	c, err := b.PopCountMasked(lineages)
	if err != nil {
		return err
	}
	if !Informative(c, l) {
		return nil
	}

	invert := c != 1
	if err := b.credit(table, lineages, queries, invert); err != nil {
		return err
	}
	if l == 2 {
		// c == 1 == l-1: the other lineage is isolated on the 0-side.
		// Crediting it too keeps Score invariant under complementing b.
		return b.credit(table, lineages, queries, true)
	}
	return nil
}

// side returns word i of the side selected by invert.
func (b Bipartition) side(i int, invert bool) uint64 {
	if invert {
		return ^b.words[i]
	}
	return b.words[i]
}

func (b Bipartition) credit(table *accum.Table, lineages, queries *taxa.Mask, invert bool) error {
	k := -1
	for i := 0; i < lineages.WordCount(); i++ {
		if v := b.side(i, invert) & lineages.Word(i); v != 0 {
			k = i*wordBits + bits.TrailingZeros64(v)
			break
		}
	}
	if k < 0 {
		return fmt.Errorf("%w: no isolated lineage in %d-tip bipartition (mask %d bits, inverted=%t)",
			ErrIndexOutOfRange, b.n, lineages.Len(), invert)
	}

	offset := lineages.Len()
	for i := offset / wordBits; i < queries.WordCount(); i++ {
		v := b.side(i, invert) & queries.Word(i)
		for v != 0 {
			j := i*wordBits + bits.TrailingZeros64(v)
			v &= v - 1
			if err := table.Inc(k, j-offset); err != nil {
				return err
			}
		}
	}
	return nil
}

// Format renders the bipartition as "<1-side>|<0-side>" using the lineage
// labels for indices [0, L) and the query labels for [L, L+Q). Other tips
// are omitted.
func (b Bipartition) Format(lineages, queries []string) string {
	var left, right []string
	place := func(i int, label string) {
		if b.Test(i) {
			left = append(left, label)
		} else {
			right = append(right, label)
		}
	}
	for i, label := range lineages {
		place(i, label)
	}
	for i, label := range queries {
		place(len(lineages)+i, label)
	}
	return strings.Join(left, ",") + "|" + strings.Join(right, ",")
}
