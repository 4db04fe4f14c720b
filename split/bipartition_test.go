package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/splitmatch/accum"
)

func TestBipartition_InformativeFilter(t *testing.T) {
	// L=4, Q=1, N=6: lineages 0..3, query 4, other 5.
	g := newGroups(t, 4, 1)

	tests := []struct {
		name    string
		ones    []int
		c       int
		updates bool
	}{
		{"no lineage", []int{4, 5}, 0, false},
		{"one lineage", []int{0, 4}, 1, true},
		{"two lineages", []int{0, 1, 4}, 2, false},
		{"three lineages", []int{0, 1, 2}, 3, true},
		{"all lineages", []int{0, 1, 2, 3}, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bipartition(t, 6, tt.ones...)
			c, err := b.PopCountMasked(g.lm)
			require.NoError(t, err)
			assert.Equal(t, tt.c, c)
			assert.Equal(t, tt.updates, Informative(c, 4))

			tbl := g.table()
			require.NoError(t, b.Score(tbl, g.lm, g.qm))
			assert.Equal(t, tt.updates, tbl.Total() > 0)
		})
	}
}

func TestBipartition_ExactCells(t *testing.T) {
	// L=3, Q=3: lineage 1 together with queries 0 and 2.
	g := newGroups(t, 3, 3)
	b := bipartition(t, 8, 1, 3, 5)

	tbl := g.table()
	require.NoError(t, b.Score(tbl, g.lm, g.qm))

	for c := range tbl.All() {
		want := uint64(0)
		if c.Lineage == 1 && (c.Query == 0 || c.Query == 2) {
			want = 1
		}
		assert.Equal(t, want, c.Count, "cell %d,%d", c.Lineage, c.Query)
	}
}

func TestBipartition_InvertedSide(t *testing.T) {
	// L=3: lineages 0 and 2 on the 1-side isolate lineage 1 on the 0-side.
	g := newGroups(t, 3, 2)
	b := bipartition(t, 6, 0, 2, 4)

	tbl := g.table()
	require.NoError(t, b.Score(tbl, g.lm, g.qm))

	assert.Equal(t, uint64(1), tbl.At(1, 0))
	assert.Equal(t, uint64(0), tbl.At(1, 1))
	assert.Equal(t, uint64(1), tbl.Total())
}

func TestBipartition_SideInvariance(t *testing.T) {
	for _, shape := range []struct{ l, q, others int }{
		{2, 2, 2},
		{3, 2, 2},
		{4, 3, 1},
	} {
		g := newGroups(t, shape.l, shape.q)
		n := shape.l + shape.q + shape.others
		for bitsOn := 0; bitsOn < 1<<n; bitsOn++ {
			var ones []int
			for i := 0; i < n; i++ {
				if bitsOn&(1<<i) != 0 {
					ones = append(ones, i)
				}
			}
			b := bipartition(t, n, ones...)

			a, c := g.table(), g.table()
			require.NoError(t, b.Score(a, g.lm, g.qm))
			require.NoError(t, complement(t, b).Score(c, g.lm, g.qm))
			require.True(t, a.Equal(c), "L=%d split %b", shape.l, bitsOn)
		}
	}
}

func TestBipartition_Additive(t *testing.T) {
	g := newGroups(t, 3, 2)
	b := bipartition(t, 6, 2, 3, 4)

	once := g.table()
	require.NoError(t, b.Score(once, g.lm, g.qm))

	twice := g.table()
	require.NoError(t, b.Score(twice, g.lm, g.qm))
	require.NoError(t, b.Score(twice, g.lm, g.qm))

	for c := range once.All() {
		assert.Equal(t, 2*c.Count, twice.At(c.Lineage, c.Query))
	}
	assert.Equal(t, uint64(2), once.Total())
}

func TestBipartition_SingleLineage(t *testing.T) {
	g := newGroups(t, 1, 2)

	t.Run("lineage on 1-side", func(t *testing.T) {
		tbl := g.table()
		require.NoError(t, bipartition(t, 4, 0, 2).Score(tbl, g.lm, g.qm))
		assert.Equal(t, uint64(0), tbl.At(0, 0))
		assert.Equal(t, uint64(1), tbl.At(0, 1))
	})

	t.Run("lineage on 0-side is not informative", func(t *testing.T) {
		tbl := g.table()
		require.NoError(t, bipartition(t, 4, 1, 2).Score(tbl, g.lm, g.qm))
		assert.Equal(t, uint64(0), tbl.Total())
	})
}

func TestBipartition_TwoLineages(t *testing.T) {
	// A (0) with Q1 (2) against B (1): A gets Q1, B gets nothing, whichever
	// side is encoded as 1.
	g := newGroups(t, 2, 1)

	for _, b := range []Bipartition{
		bipartition(t, 3, 0, 2),
		bipartition(t, 3, 1),
	} {
		tbl := g.table()
		require.NoError(t, b.Score(tbl, g.lm, g.qm))
		assert.Equal(t, uint64(1), tbl.At(0, 0))
		assert.Equal(t, uint64(0), tbl.At(1, 0))
	}

	// B (1) with Q1 (2) against A (0): only B is credited, from either side.
	for _, b := range []Bipartition{
		bipartition(t, 3, 1, 2),
		bipartition(t, 3, 0),
	} {
		tbl := g.table()
		require.NoError(t, b.Score(tbl, g.lm, g.qm))
		assert.Equal(t, uint64(0), tbl.At(0, 0))
		assert.Equal(t, uint64(1), tbl.At(1, 0))
	}
}

func TestBipartition_WideIndexSpace(t *testing.T) {
	// Lineages and queries straddle word boundaries.
	g := newGroups(t, 70, 70)
	n := 150
	b := bipartition(t, n, 65, 70, 128, 139)

	tbl := g.table()
	require.NoError(t, b.Score(tbl, g.lm, g.qm))
	assert.Equal(t, uint64(1), tbl.At(65, 0))
	assert.Equal(t, uint64(1), tbl.At(65, 58))
	assert.Equal(t, uint64(1), tbl.At(65, 69))
	assert.Equal(t, uint64(3), tbl.Total())
}

func TestBipartition_MaskMismatch(t *testing.T) {
	g := newGroups(t, 3, 3)
	b := bipartition(t, 4, 0)

	err := b.Score(g.table(), g.lm, g.qm)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, err, accum.ErrIndexOutOfRange)

	_, err = bipartition(t, 2, 0).PopCountMasked(g.lm)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBipartition_LoneBitScanFails(t *testing.T) {
	g := newGroups(t, 3, 1)
	b := bipartition(t, 4, 0, 1, 2)

	err := b.credit(g.table(), g.lm, g.qm, true)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBipartition_TableMismatch(t *testing.T) {
	g := newGroups(t, 3, 2)
	b := bipartition(t, 5, 0, 4)

	err := b.Score(accum.New(3, 1), g.lm, g.qm)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBipartition_Format(t *testing.T) {
	b := bipartition(t, 5, 0, 3)
	assert.Equal(t, "A,Q1|B,C,Q2", b.Format([]string{"A", "B", "C"}, []string{"Q1", "Q2"}))
	assert.Equal(t, 2, b.Size())
	assert.Equal(t, uint(2), b.Bitset().Count())
}
