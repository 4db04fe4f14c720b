package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/splitmatch"
)

var version = "dev"

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "splitmatch",
		Short: "Count how often query taxa group with lineages across a tree set",
		Long: `
Read a line-delimited Newick tree set, generate the bipartitions of every
tree and count, for each lineage and query, the informative splits that
place the query on the side of that lineage alone.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(newRunCmd(opts), newSplitsCmd(opts))
	return cmd
}

// logger builds the logger selected by the persistent flags. Logs go to
// stderr so reports can be written to stdout.
func (o *rootOptions) logger(w io.Writer) (*splitmatch.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	ho := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(o.logFormat) {
	case "text":
		return splitmatch.NewLogger(slog.NewTextHandler(w, ho)), nil
	case "json":
		return splitmatch.NewLogger(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("--log-format: unknown format %q", o.logFormat)
	}
}
