package split

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/taxa"
)

// Budget reserves memory for bipartition buffers.
type Budget interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

type forestOptions struct {
	workers  int
	budget   Budget
	progress func(done, total int)
}

// ForestOption configures a Forest.
type ForestOption func(*forestOptions)

// WithWorkers sets the number of goroutines used to build and score the
// forest. Values below 2 select the sequential path.
func WithWorkers(n int) ForestOption {
	return func(o *forestOptions) {
		o.workers = n
	}
}

// WithBudget charges every bipartition buffer against b.
func WithBudget(b Budget) ForestOption {
	return func(o *forestOptions) {
		o.budget = b
	}
}

// WithProgress registers a callback invoked after each tree is scored.
// It may be called from several goroutines.
func WithProgress(fn func(done, total int)) ForestOption {
	return func(o *forestOptions) {
		o.progress = fn
	}
}

// Forest holds one Set per tree of a uniformly numbered forest.
type Forest struct {
	sets []*Set
	opts forestOptions
}

// NewForest generates the bipartitions of every tree.
func NewForest(ctx context.Context, trees []*phylo.Tree, optFns ...ForestOption) (*Forest, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyForest
	}

	f := &Forest{sets: make([]*Set, len(trees))}
	for _, fn := range optFns {
		fn(&f.opts)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.opts.workers, 1))

	for i, t := range trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := NewSet(t)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			if f.opts.budget != nil && !f.opts.budget.TryAcquireMemory(s.Bytes()) {
				return fmt.Errorf("%w: tree %d needs %d bytes", ErrMemoryBudget, i, s.Bytes())
			}
			f.sets[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		f.Release()
		return nil, err
	}
	return f, nil
}

// NewForestFromSets wraps prebuilt sets.
func NewForestFromSets(sets []*Set, optFns ...ForestOption) (*Forest, error) {
	if len(sets) == 0 {
		return nil, ErrEmptyForest
	}
	f := &Forest{sets: sets}
	for _, fn := range optFns {
		fn(&f.opts)
	}
	return f, nil
}

// Len returns the number of trees.
func (f *Forest) Len() int { return len(f.sets) }

// At returns the set of tree i.
func (f *Forest) At(i int) *Set { return f.sets[i] }

// TotalSplits returns the number of bipartitions over all trees.
func (f *Forest) TotalSplits() int {
	total := 0
	for _, s := range f.sets {
		total += s.SplitCount()
	}
	return total
}

// Release returns the memory charged to the budget.
func (f *Forest) Release() {
	if f.opts.budget == nil {
		return
	}
	for i, s := range f.sets {
		if s != nil {
			f.opts.budget.ReleaseMemory(s.Bytes())
			f.sets[i] = nil
		}
	}
}

// Accumulate scores every bipartition of every tree against the lineage and
// query groups and returns the lineage × query table.
//
// Both registries must be sorted and must be the ones the forest was
// numbered with: lineages occupy [0, L), queries [L, L+Q).
func (f *Forest) Accumulate(ctx context.Context, lineages, queries *taxa.Registry) (*accum.Table, error) {
	lm, err := lineages.Mask(0)
	if err != nil {
		return nil, fmt.Errorf("lineage mask: %w", err)
	}
	qm, err := queries.Mask(lineages.Size())
	if err != nil {
		return nil, fmt.Errorf("query mask: %w", err)
	}

	workers := min(max(f.opts.workers, 1), len(f.sets))
	tables := make([]*accum.Table, workers)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * len(f.sets) / workers
		hi := (w + 1) * len(f.sets) / workers
		g.Go(func() error {
			tbl := accum.New(lineages.Size(), queries.Size())
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := f.sets[i].Accumulate(tbl, lm, qm); err != nil {
					return fmt.Errorf("tree %d: %w", i, err)
				}
				if f.opts.progress != nil {
					f.opts.progress(int(done.Add(1)), len(f.sets))
				}
			}
			tables[w] = tbl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := tables[0]
	for _, tbl := range tables[1:] {
		if err := result.Merge(tbl); err != nil {
			return nil, err
		}
	}
	return result, nil
}
