package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/splitmatch"
	"github.com/hupe1980/splitmatch/blobstore"
	"github.com/hupe1980/splitmatch/codec"
	"github.com/hupe1980/splitmatch/config"
)

const runExample = `  splitmatch run --config run.yaml
  splitmatch run --config run.yaml --treeset s3://bucket/trees.nwk.zst --output matches.json --format json
  SPLITMATCH_OPTIONS_WORKERS=8 splitmatch run --config run.yaml`

func newRunCmd(root *rootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Accumulate the lineage × query match table and write the report",
		Long: `
Lineages and queries are read from the configuration file; every option can be
overridden by SPLITMATCH_* environment variables and by flags.`,
		Example:                    runExample,
		Args:                       cobra.NoArgs,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, root, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "configuration file (yaml, json or toml)")
	f.StringP("treeset", "t", "", "tree set location: path, file://, s3:// or minio://")
	f.StringP("output", "o", "", "report location; a .zst or .lz4 suffix compresses it")
	f.StringP("format", "f", "csv", "report format: csv or json")
	f.String("codec", codec.Default.Name(), "JSON implementation: go-json or json")
	f.IntP("workers", "w", 1, "parallel parsers and accumulators")
	f.String("memory-limit", "", "limit for bipartition buffers, e.g. 2GiB")
	f.String("io-limit", "", "tree set and report throughput per second, e.g. 64MB")

	return cmd
}

func run(cmd *cobra.Command, root *rootOptions, cfg *config.Config) error {
	ctx := cmd.Context()

	logger, err := root.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c, err := codec.ByName(cfg.Options.Codec)
	if err != nil {
		return err
	}
	memLimit, err := cfg.MemoryLimitBytes()
	if err != nil {
		return err
	}
	ioLimit, err := cfg.IOLimitBytes()
	if err != nil {
		return err
	}

	a := splitmatch.New(
		splitmatch.WithLogger(logger),
		splitmatch.WithCodec(c),
		splitmatch.WithWorkers(cfg.Options.Workers),
		splitmatch.WithMemoryLimit(memLimit),
		splitmatch.WithIOLimit(ioLimit),
	)

	res, err := a.Run(ctx, splitmatch.Input{
		Lineages: cfg.Lineages,
		Queries:  cfg.Queries,
		Treeset:  cfg.Options.Treeset,
	})
	if err != nil {
		return err
	}

	if cfg.Options.Output == "-" {
		return a.WriteTo(cmd.OutOrStdout(), res, cfg.ReportFormat())
	}
	store, name, err := blobstore.Resolve(ctx, cfg.Options.Output)
	if err != nil {
		return err
	}
	return a.Write(ctx, res, store, name, cfg.ReportFormat())
}
