package numbering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/splitmatch/newick"
	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/split"
	"github.com/hupe1980/splitmatch/taxa"
)

func registry(t *testing.T, labels ...string) *taxa.Registry {
	t.Helper()
	r := taxa.NewRegistry(labels)
	require.NoError(t, r.Sort())
	return r
}

func parse(t *testing.T, trees ...string) []*phylo.Tree {
	t.Helper()
	out := make([]*phylo.Tree, len(trees))
	for i, s := range trees {
		tr, err := newick.Parse(s)
		require.NoError(t, err)
		out[i] = tr
	}
	return out
}

func indices(t *phylo.Tree) map[string]int {
	m := make(map[string]int, t.TipCount())
	for _, id := range t.Tips() {
		n := t.Node(id)
		m[n.Label] = n.Index
	}
	return m
}

func TestNormalize_Layout(t *testing.T) {
	trees := parse(t,
		"((Y,B),(Q1,A),X);",
		"((A,X),(Y,Q1),B);",
	)
	n, err := Normalize(trees, registry(t, "B", "A"), registry(t, "Q1"))
	require.NoError(t, err)

	assert.Equal(t, 5, n.Len())
	assert.Equal(t, 2, n.Lineages())
	assert.Equal(t, 1, n.Queries())
	assert.Equal(t, []string{"Y", "X"}, n.Others())

	want := map[string]int{"A": 0, "B": 1, "Q1": 2, "Y": 3, "X": 4}
	for _, tr := range trees {
		assert.Equal(t, want, indices(tr))
		assert.True(t, tr.Numbered())
	}
	for label, idx := range want {
		got, ok := n.Index(label)
		assert.True(t, ok)
		assert.Equal(t, idx, got)
		assert.Equal(t, label, n.Label(idx))
	}
	_, ok := n.Index("Z")
	assert.False(t, ok)
}

func TestNormalize_FeedsSplitSets(t *testing.T) {
	trees := parse(t, "((A,Q1),(B,X));", "((B,Q1),(A,X));")
	lineages, queries := registry(t, "A", "B"), registry(t, "Q1")
	_, err := Normalize(trees, lineages, queries)
	require.NoError(t, err)

	for _, tr := range trees {
		s, err := split.NewSet(tr)
		require.NoError(t, err)
		assert.Equal(t, 1, s.SplitCount())
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		trees    []string
		lineages []string
		queries  []string
		want     error
	}{
		{
			name:     "missing lineage",
			trees:    []string{"((A,Q1),(C,D));"},
			lineages: []string{"A", "B"},
			queries:  []string{"Q1"},
			want:     ErrMissingTaxon,
		},
		{
			name:     "missing query",
			trees:    []string{"((A,B),(C,D));"},
			lineages: []string{"A", "B"},
			queries:  []string{"Q1"},
			want:     ErrMissingTaxon,
		},
		{
			name:     "unknown tip",
			trees:    []string{"((A,B),(Q1,D));", "((A,B),(Q1,E));"},
			lineages: []string{"A", "B"},
			queries:  []string{"Q1"},
			want:     ErrInconsistentTipNumbering,
		},
		{
			name:     "tip count mismatch",
			trees:    []string{"((A,B),(Q1,D));", "((A,B),Q1);"},
			lineages: []string{"A", "B"},
			queries:  []string{"Q1"},
			want:     ErrInconsistentTipNumbering,
		},
		{
			name:     "more group labels than tips",
			trees:    []string{"((A,B),(C,D));"},
			lineages: []string{"A", "B", "C"},
			queries:  []string{"Q1", "Q2"},
			want:     ErrMissingTaxon,
		},
		{
			name:     "lineage and query overlap",
			trees:    []string{"((A,B),(Q1,D));"},
			lineages: []string{"A", "B"},
			queries:  []string{"A"},
			want:     taxa.ErrDuplicateLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = Normalize(parse(t, tt.trees...), registry(t, tt.lineages...), registry(t, tt.queries...))
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalize_TipError(t *testing.T) {
	trees := parse(t, "((A,B),(Q1,D));", "((A,B),(Q1,E));")
	_, err := Normalize(trees, registry(t, "A", "B"), registry(t, "Q1"))

	var te *TipError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Tree)
	assert.Equal(t, "E", te.Label)
}

func TestNormalize_GroupsLargerThanTree(t *testing.T) {
	_, err := Normalize(parse(t, "((A,B),(C,D));"), registry(t, "A", "B", "C"), registry(t, "Q1", "Q2"))

	var te *TipError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Tree)
	assert.Equal(t, "Q1", te.Label)
	assert.ErrorIs(t, err, ErrMissingTaxon)
}

func TestNormalize_EmptyForest(t *testing.T) {
	_, err := Normalize(nil, registry(t, "A"), registry(t))
	assert.ErrorIs(t, err, ErrEmptyForest)
	assert.ErrorIs(t, err, split.ErrEmptyForest)
}

func TestNormalize_UnsortedRegistry(t *testing.T) {
	trees := parse(t, "((A,B),(Q1,D));")
	_, err := Normalize(trees, taxa.NewRegistry([]string{"B", "A"}), registry(t, "Q1"))
	assert.ErrorIs(t, err, taxa.ErrNotSorted)
}
