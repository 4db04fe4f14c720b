// Package splitmatch counts how often query taxa group with lineage taxa
// across a forest of phylogenetic trees.
//
// Every tree contributes its non-trivial bipartitions (splits). A split is
// informative when exactly one lineage sits apart from all other lineages.
// Each query on that lineage's side is credited one match with it. Summed
// over the forest this yields a lineage × query table of match counts.
//
// # Quick Start
//
//	a := splitmatch.New(
//	    splitmatch.WithWorkers(runtime.NumCPU()),
//	    splitmatch.WithLogger(splitmatch.NewTextLogger(slog.LevelInfo)),
//	)
//
//	res, err := a.Run(ctx, splitmatch.Input{
//	    Lineages: []string{"A", "B", "C"},
//	    Queries:  []string{"Q1", "Q2"},
//	    Treeset:  "s3://bucket/run-1/trees.nwk.zst",
//	})
//
//	store, name, err := blobstore.Resolve(ctx, "matches.csv")
//	err = a.Write(ctx, res, store, name, report.CSV)
//
// # Tip Numbering
//
// Tips are numbered globally: lineages first, then queries (both in sorted
// label order), then all remaining taxa in the order of the first tree.
// All trees must share one tip set.
//
// # Locations
//
// Tree sets and reports are addressed by local path or URI. Support for
// s3:// and minio:// is enabled by importing blobstore/s3 and
// blobstore/minio. Inputs compressed with zstd or lz4 are detected
// automatically; reports whose names end in .zst or .lz4 are compressed.
package splitmatch
