package taxa

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrLabelNotFound is returned when a label is not part of a registry.
	ErrLabelNotFound = errors.New("label not found")

	// ErrNotSorted is returned when a registry is queried before Sort was called.
	ErrNotSorted = errors.New("registry is not sorted")

	// ErrDuplicateLabel is returned by Sort when a label occurs more than once.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// Registry is an ordered set of taxon labels.
//
// Lookups are binary searches and therefore require Sort to have been called.
// After sorting the registry must not change: its indices are baked into
// every mask and bipartition of an analysis.
type Registry struct {
	labels []string
	sorted bool
}

// NewRegistry creates a registry from labels. The slice is copied.
func NewRegistry(labels []string) *Registry {
	return &Registry{labels: slices.Clone(labels)}
}

// Sort orders the labels. It fails on duplicated labels, which would
// otherwise map two taxa onto one index.
func (r *Registry) Sort() error {
	sort.Strings(r.labels)
	for i := 1; i < len(r.labels); i++ {
		if r.labels[i] == r.labels[i-1] {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, r.labels[i])
		}
	}
	r.sorted = true
	return nil
}

// Sorted reports whether Sort has completed successfully.
func (r *Registry) Sorted() bool {
	return r.sorted
}

// FindLabelIndex returns the index of label.
func (r *Registry) FindLabelIndex(label string) (int, error) {
	if !r.sorted {
		return 0, ErrNotSorted
	}
	i, found := slices.BinarySearch(r.labels, label)
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}
	return i, nil
}

// Contains reports whether label is part of the registry.
func (r *Registry) Contains(label string) bool {
	_, err := r.FindLabelIndex(label)
	return err == nil
}

// Size returns the number of labels.
func (r *Registry) Size() int {
	return len(r.labels)
}

// Label returns the label at index i.
func (r *Registry) Label(i int) string {
	return r.labels[i]
}

// Labels returns a copy of the labels in registry order.
func (r *Registry) Labels() []string {
	return slices.Clone(r.labels)
}

// Mask returns a mask of length offset+Size() with the bits
// [offset, offset+Size()) set.
func (r *Registry) Mask(offset int) (*Mask, error) {
	if !r.sorted {
		return nil, ErrNotSorted
	}
	if offset < 0 {
		return nil, fmt.Errorf("taxa: negative mask offset %d", offset)
	}
	m := NewMask(offset + r.Size())
	m.SetBits(offset)
	return m, nil
}
