package split

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/taxa"
)

// groups builds sorted lineage and query registries named L0.. and Q0..
// together with the matching masks.
type groups struct {
	lineages, queries *taxa.Registry
	lm, qm            *taxa.Mask
}

func newGroups(t *testing.T, l, q int) groups {
	t.Helper()
	var ls, qs []string
	for i := range l {
		ls = append(ls, fmt.Sprintf("L%02d", i))
	}
	for i := range q {
		qs = append(qs, fmt.Sprintf("Q%02d", i))
	}
	g := groups{lineages: taxa.NewRegistry(ls), queries: taxa.NewRegistry(qs)}
	require.NoError(t, g.lineages.Sort())
	require.NoError(t, g.queries.Sort())

	var err error
	g.lm, err = g.lineages.Mask(0)
	require.NoError(t, err)
	g.qm, err = g.queries.Mask(l)
	require.NoError(t, err)
	return g
}

func (g groups) table() *accum.Table {
	return accum.New(g.lineages.Size(), g.queries.Size())
}

// index maps a label of the form L.., Q.. or X.. onto the global index space.
func (g groups) index(t *testing.T, label string) int {
	t.Helper()
	if i, err := g.lineages.FindLabelIndex(label); err == nil {
		return i
	}
	if i, err := g.queries.FindLabelIndex(label); err == nil {
		return g.lineages.Size() + i
	}
	var k int
	_, err := fmt.Sscanf(label, "X%d", &k)
	require.NoError(t, err)
	return g.lineages.Size() + g.queries.Size() + k
}

// bipartition builds a single-split set with the given tips on the 1-side.
func bipartition(t *testing.T, n int, ones ...int) Bipartition {
	t.Helper()
	buf := make([]uint64, wordCount(n))
	for _, i := range ones {
		buf[i/wordBits] |= 1 << (uint(i) % wordBits)
	}
	s, err := FromWords(buf, n)
	require.NoError(t, err)
	return s.At(0)
}

func complement(t *testing.T, b Bipartition) Bipartition {
	t.Helper()
	var ones []int
	for i := 0; i < b.Len(); i++ {
		if !b.Test(i) {
			ones = append(ones, i)
		}
	}
	return bipartition(t, b.Len(), ones...)
}

// randomTree builds a random unrooted tree over labels and numbers its tips
// with g.index.
func randomTree(t *testing.T, rng *rand.Rand, g groups, labels []string) *phylo.Tree {
	t.Helper()
	labels = append([]string(nil), labels...)
	rng.Shuffle(len(labels), func(i, j int) { labels[i], labels[j] = labels[j], labels[i] })

	b := phylo.NewBuilder()
	var grow func(parent int, ls []string)
	grow = func(parent int, ls []string) {
		if len(ls) == 1 {
			b.Add(parent, ls[0])
			return
		}
		node := b.Add(parent, "")
		cut := 1 + rng.Intn(len(ls)-1)
		grow(node, ls[:cut])
		grow(node, ls[cut:])
	}

	root := b.Add(-1, "")
	a := 1 + rng.Intn(len(labels)-2)
	c := a + 1 + rng.Intn(len(labels)-a-1)
	grow(root, labels[:a])
	grow(root, labels[a:c])
	grow(root, labels[c:])

	tr, err := b.Build()
	require.NoError(t, err)
	for _, id := range tr.Tips() {
		tr.Node(id).Index = g.index(t, tr.Node(id).Label)
	}
	return tr
}

func allLabels(g groups, others int) []string {
	labels := append(g.lineages.Labels(), g.queries.Labels()...)
	for i := range others {
		labels = append(labels, fmt.Sprintf("X%d", i))
	}
	return labels
}
