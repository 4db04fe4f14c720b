// Command splitmatch counts lineage/query co-occurrences over the
// bipartitions of a Newick tree set.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/hupe1980/splitmatch/blobstore/minio"
	_ "github.com/hupe1980/splitmatch/blobstore/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "splitmatch:", err)
		os.Exit(1)
	}
}
