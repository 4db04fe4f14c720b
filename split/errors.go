package split

import (
	"errors"

	"github.com/hupe1980/splitmatch/accum"
)

var (
	// ErrIndexOutOfRange is returned when masks, bipartitions and the table
	// disagree about the size of the tip index space. It aliases
	// accum.ErrIndexOutOfRange so both match with errors.Is.
	ErrIndexOutOfRange = accum.ErrIndexOutOfRange

	// ErrInvalidNumbering is returned when a tree's tips do not carry a
	// unique global index in [0, tips).
	ErrInvalidNumbering = errors.New("tree tips are not uniformly numbered")

	// ErrEmptyForest is returned when a forest contains no trees.
	ErrEmptyForest = errors.New("forest contains no trees")

	// ErrMemoryBudget is returned when the bipartition buffers of a forest
	// exceed the configured memory budget.
	ErrMemoryBudget = errors.New("bipartition memory budget exceeded")
)
