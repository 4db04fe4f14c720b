package splitmatch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/blobstore"
	"github.com/hupe1980/splitmatch/internal/resource"
	"github.com/hupe1980/splitmatch/newick"
	"github.com/hupe1980/splitmatch/numbering"
	"github.com/hupe1980/splitmatch/split"
	"github.com/hupe1980/splitmatch/taxa"
)

var (
	// ErrLabelNotFound is returned when a label is not part of a registry.
	ErrLabelNotFound = taxa.ErrLabelNotFound

	// ErrDuplicateLabel is returned for repeated lineage or query labels.
	ErrDuplicateLabel = taxa.ErrDuplicateLabel

	// ErrIndexOutOfRange is returned when masks, bipartitions and the table
	// disagree about the tip index space.
	ErrIndexOutOfRange = accum.ErrIndexOutOfRange

	// ErrCounterOverflow is returned when a match counter would wrap.
	ErrCounterOverflow = accum.ErrCounterOverflow

	// ErrInconsistentTipNumbering is returned when the trees of a forest do
	// not share one tip set.
	ErrInconsistentTipNumbering = numbering.ErrInconsistentTipNumbering

	// ErrMissingTaxon is returned when a lineage or query is not a tip.
	ErrMissingTaxon = numbering.ErrMissingTaxon

	// ErrEmptyForest is returned when the tree set contains no trees.
	ErrEmptyForest = split.ErrEmptyForest

	// ErrParse is returned for unreadable Newick input.
	ErrParse = newick.ErrParse

	// ErrNotFound is returned when a tree set or report location does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrMemoryLimit is returned when bipartition buffers exceed the memory limit.
	ErrMemoryLimit = resource.ErrMemoryLimit
)

// ErrTipNumbering identifies the tree and tip that broke the numbering.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrTipNumbering struct {
	Tree  int
	Label string
	cause error
}

func (e *ErrTipNumbering) Error() string {
	return fmt.Sprintf("tree %d: tip %q: %v", e.Tree, e.Label, e.cause)
}

func (e *ErrTipNumbering) Unwrap() error { return e.cause }

// ErrTreeParse identifies the tree set line that failed to parse.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrTreeParse struct {
	Location string
	Line     int
	cause    error
}

func (e *ErrTreeParse) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Location, e.Line, e.cause)
}

func (e *ErrTreeParse) Unwrap() error { return e.cause }

func translateError(err error, location string) error {
	if err == nil {
		return nil
	}

	var te *numbering.TipError
	if errors.As(err, &te) {
		return &ErrTipNumbering{Tree: te.Tree, Label: te.Label, cause: err}
	}
	var pe *newick.ParseError
	if errors.As(err, &pe) {
		return &ErrTreeParse{Location: location, Line: pe.Line, cause: err}
	}

	if errors.Is(err, split.ErrMemoryBudget) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}

	return err
}
