package splitmatch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/blobstore"
	"github.com/hupe1980/splitmatch/codec"
	"github.com/hupe1980/splitmatch/internal/compress"
	"github.com/hupe1980/splitmatch/internal/resource"
	"github.com/hupe1980/splitmatch/newick"
	"github.com/hupe1980/splitmatch/numbering"
	"github.com/hupe1980/splitmatch/phylo"
	"github.com/hupe1980/splitmatch/report"
	"github.com/hupe1980/splitmatch/split"
	"github.com/hupe1980/splitmatch/taxa"
)

// Input describes one analysis.
type Input struct {
	// Lineages and Queries are the taxon labels of the two groups.
	// Order does not matter; duplicates are rejected.
	Lineages []string
	Queries  []string

	// Treeset is the location of a line-delimited Newick tree set: a local
	// path or a URI understood by blobstore.Resolve. Ignored if Trees is set.
	Treeset string

	// Trees is an already parsed forest.
	Trees []*phylo.Tree
}

// Result is the outcome of Run.
type Result struct {
	// Table holds the match counts, indexed by sorted lineage and query.
	Table *accum.Table

	Lineages  *taxa.Registry
	Queries   *taxa.Registry
	Numbering *numbering.Numbering

	Trees       int
	TotalSplits int
}

// Summary returns the forest statistics for reports.
func (r *Result) Summary() report.Summary {
	return report.Summary{Trees: r.Trees, TotalSplits: r.TotalSplits}
}

// Analyzer runs split-match analyses.
type Analyzer struct {
	opts options
	rc   *resource.Controller
}

// New creates an Analyzer.
func New(optFns ...Option) *Analyzer {
	a := &Analyzer{
		opts: options{
			codec:   codec.Default,
			logger:  NoopLogger(),
			metrics: NoopMetricsCollector{},
			workers: 1,
		},
	}
	for _, fn := range optFns {
		fn(&a.opts)
	}
	a.rc = a.opts.resources()
	return a
}

// Run sorts the taxon groups, reads and numbers the forest, generates every
// bipartition and accumulates the lineage × query match table.
func (a *Analyzer) Run(ctx context.Context, in Input) (*Result, error) {
	log := a.opts.logger

	lineages, err := registry("lineages", in.Lineages)
	if err != nil {
		return nil, err
	}
	queries, err := registry("queries", in.Queries)
	if err != nil {
		return nil, err
	}

	trees := in.Trees
	if trees == nil {
		trees, err = a.ReadForest(ctx, in.Treeset)
		if err != nil {
			return nil, err
		}
	}
	if len(trees) == 0 {
		return nil, ErrEmptyForest
	}

	num, err := numbering.Normalize(trees, lineages, queries)
	if err != nil {
		log.LogNormalize(ctx, lineages.Size(), queries.Size(), 0, err)
		return nil, translateError(err, in.Treeset)
	}
	log.LogNormalize(ctx, lineages.Size(), queries.Size(), len(num.Others()), nil)

	start := time.Now()
	forest, err := split.NewForest(ctx, trees,
		split.WithWorkers(a.opts.workers),
		split.WithBudget(a.rc),
		split.WithProgress(log.progress(ctx, "accumulate")),
	)
	if err != nil {
		log.LogAccumulate(ctx, len(trees), 0, 0, err)
		a.opts.metrics.RecordAccumulate(0, 0, time.Since(start), err)
		return nil, translateError(err, in.Treeset)
	}
	defer forest.Release()

	table, err := forest.Accumulate(ctx, lineages, queries)
	if err != nil {
		log.LogAccumulate(ctx, forest.Len(), forest.TotalSplits(), 0, err)
		a.opts.metrics.RecordAccumulate(forest.TotalSplits(), 0, time.Since(start), err)
		return nil, translateError(err, in.Treeset)
	}
	log.LogAccumulate(ctx, forest.Len(), forest.TotalSplits(), table.Total(), nil)
	a.opts.metrics.RecordAccumulate(forest.TotalSplits(), table.Total(), time.Since(start), nil)
	log.DebugContext(ctx, "bipartition memory", "peak_bytes", a.rc.MemoryPeak())

	return &Result{
		Table:       table,
		Lineages:    lineages,
		Queries:     queries,
		Numbering:   num,
		Trees:       forest.Len(),
		TotalSplits: forest.TotalSplits(),
	}, nil
}

func registry(name string, labels []string) (*taxa.Registry, error) {
	r := taxa.NewRegistry(labels)
	if err := r.Sort(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return r, nil
}

// ReadForest reads a possibly compressed tree set from location.
func (a *Analyzer) ReadForest(ctx context.Context, location string) (trees []*phylo.Tree, err error) {
	log := a.opts.logger
	start := time.Now()
	defer func() { a.opts.metrics.RecordParse(len(trees), time.Since(start), err) }()

	store, name, err := blobstore.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	blob, err := store.Open(ctx, name)
	if err != nil {
		log.LogParse(ctx, location, 0, err)
		return nil, fmt.Errorf("open tree set %s: %w", location, err)
	}
	defer blob.Close()

	r, err := compress.NewReader(resource.NewRateLimitedReader(ctx, blob, a.rc))
	if err != nil {
		return nil, fmt.Errorf("open tree set %s: %w", location, err)
	}
	defer r.Close()

	trees, err = newick.ReadForest(ctx, r, func(o *newick.Options) {
		o.Workers = a.opts.workers
	})
	log.LogParse(ctx, location, len(trees), err)
	if err != nil {
		return nil, translateError(err, location)
	}
	return trees, nil
}

// Splits reads a tree set and generates its bipartitions without scoring
// them. Tips are numbered in the order of the first tree.
func (a *Analyzer) Splits(ctx context.Context, location string) (*split.Forest, *numbering.Numbering, error) {
	trees, err := a.ReadForest(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	empty := taxa.NewRegistry(nil)
	if err := empty.Sort(); err != nil {
		return nil, nil, err
	}
	num, err := numbering.Normalize(trees, empty, empty)
	if err != nil {
		return nil, nil, translateError(err, location)
	}

	forest, err := split.NewForest(ctx, trees,
		split.WithWorkers(a.opts.workers),
		split.WithBudget(a.rc),
	)
	if err != nil {
		return nil, nil, translateError(err, location)
	}
	return forest, num, nil
}

// Write stores the report of res under name in store. A .zst or .lz4
// suffix compresses the report.
func (a *Analyzer) Write(ctx context.Context, res *Result, store blobstore.BlobStore, name string, format report.Format) (err error) {
	log := a.opts.logger
	start := time.Now()
	defer func() {
		log.LogWrite(ctx, name, string(format), err)
		a.opts.metrics.RecordWrite(time.Since(start), err)
	}()

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	cw, err := compress.NewWriter(resource.NewRateLimitedWriter(ctx, w, a.rc), compress.FromName(name))
	if err != nil {
		_ = w.Abort()
		return err
	}

	if err := report.Write(cw, format, a.opts.codec, res.Table, res.Lineages, res.Queries, res.Summary()); err != nil {
		_ = cw.Close()
		_ = w.Abort()
		return err
	}
	if err := cw.Close(); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}

// WriteTo writes the report of res to w without compression.
func (a *Analyzer) WriteTo(w io.Writer, res *Result, format report.Format) error {
	return report.Write(w, format, a.opts.codec, res.Table, res.Lineages, res.Queries, res.Summary())
}
