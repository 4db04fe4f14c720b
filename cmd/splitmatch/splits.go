package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/splitmatch"
)

func newSplitsCmd(root *rootOptions) *cobra.Command {
	var (
		treeset string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "splits --treeset <location>",
		Short: "Print the non-trivial bipartitions of every tree",
		Long: `
Print one line per bipartition as "<tree>: <side>|<other side>", with tips
numbered in the order of the first tree, followed by the total count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a := splitmatch.New(splitmatch.WithLogger(logger), splitmatch.WithWorkers(workers))

			forest, num, err := a.Splits(cmd.Context(), treeset)
			if err != nil {
				return err
			}
			defer forest.Release()

			labels := make([]string, num.Len())
			for i := range labels {
				labels[i] = num.Label(i)
			}

			out := cmd.OutOrStdout()
			for t := range forest.Len() {
				for _, b := range forest.At(t).All() {
					if _, err := fmt.Fprintf(out, "%d: %s\n", t, b.Format(labels, nil)); err != nil {
						return err
					}
				}
			}
			_, err = fmt.Fprintf(out, "total: %d\n", forest.TotalSplits())
			return err
		},
	}

	cmd.Flags().StringVarP(&treeset, "treeset", "t", "", "tree set location: path, file://, s3:// or minio://")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "parallel parsers")
	_ = cmd.MarkFlagRequired("treeset")
	return cmd
}
