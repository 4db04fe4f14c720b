package accum

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
)

var (
	// ErrIndexOutOfRange is returned for accesses beyond the table bounds.
	ErrIndexOutOfRange = errors.New("table index out of range")

	// ErrCounterOverflow is returned when a counter would exceed its width.
	ErrCounterOverflow = errors.New("counter overflow")

	// ErrShapeMismatch is returned when merging tables of different shape.
	ErrShapeMismatch = errors.New("table shape mismatch")
)

// Table is a dense matrix of counters indexed [lineage][query].
type Table struct {
	cells    []uint64
	lineages int
	queries  int
}

// New creates a zeroed table.
func New(lineages, queries int) *Table {
	if lineages < 0 {
		lineages = 0
	}
	if queries < 0 {
		queries = 0
	}
	return &Table{
		cells:    make([]uint64, lineages*queries),
		lineages: lineages,
		queries:  queries,
	}
}

// Lineages returns the number of rows.
func (t *Table) Lineages() int { return t.lineages }

// Queries returns the number of columns.
func (t *Table) Queries() int { return t.queries }

func (t *Table) offset(lineage, query int) (int, error) {
	if lineage < 0 || lineage >= t.lineages || query < 0 || query >= t.queries {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d table",
			ErrIndexOutOfRange, lineage, query, t.lineages, t.queries)
	}
	return lineage*t.queries + query, nil
}

// Inc increments cell [lineage][query] by one.
func (t *Table) Inc(lineage, query int) error {
	off, err := t.offset(lineage, query)
	if err != nil {
		return err
	}
	if t.cells[off] == ^uint64(0) {
		return fmt.Errorf("%w: (%d, %d)", ErrCounterOverflow, lineage, query)
	}
	t.cells[off]++
	return nil
}

// Get returns cell [lineage][query].
func (t *Table) Get(lineage, query int) (uint64, error) {
	off, err := t.offset(lineage, query)
	if err != nil {
		return 0, err
	}
	return t.cells[off], nil
}

// At is Get without bounds reporting. It panics on invalid indices.
func (t *Table) At(lineage, query int) uint64 {
	off, err := t.offset(lineage, query)
	if err != nil {
		panic(err)
	}
	return t.cells[off]
}

// Merge adds other into t element-wise.
// On error t is left unchanged.
func (t *Table) Merge(other *Table) error {
	if other.lineages != t.lineages || other.queries != t.queries {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrShapeMismatch, t.lineages, t.queries, other.lineages, other.queries)
	}
	for i, v := range other.cells {
		if _, carry := bits.Add64(t.cells[i], v, 0); carry != 0 {
			return fmt.Errorf("%w: (%d, %d)", ErrCounterOverflow, i/t.queries, i%t.queries)
		}
	}
	for i, v := range other.cells {
		t.cells[i] += v
	}
	return nil
}

// Total returns the sum of all counters.
func (t *Table) Total() uint64 {
	var sum uint64
	for _, v := range t.cells {
		sum += v
	}
	return sum
}

// Cell is one entry of a table.
type Cell struct {
	Lineage int
	Query   int
	Count   uint64
}

// All iterates cells in row-major order.
func (t *Table) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, v := range t.cells {
			if !yield(Cell{Lineage: i / t.queries, Query: i % t.queries, Count: v}) {
				return
			}
		}
	}
}

// Equal reports whether both tables have the same shape and counts.
func (t *Table) Equal(other *Table) bool {
	if other == nil || t.lineages != other.lineages || t.queries != other.queries {
		return false
	}
	for i := range t.cells {
		if t.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
