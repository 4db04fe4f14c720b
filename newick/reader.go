package newick

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/splitmatch/phylo"
)

// Options configures ReadForest.
type Options struct {
	// Workers is the number of concurrent parsers. Values below 1 mean 1.
	Workers int

	// Progress, if set, is called after every parsed tree.
	// It may be called from several goroutines.
	Progress func(parsed int)
}

type line struct {
	no   int
	text string
}

// ReadForest reads a line-delimited tree set.
func ReadForest(ctx context.Context, r io.Reader, optFns ...func(*Options)) ([]*phylo.Tree, error) {
	opts := Options{Workers: 1}
	for _, fn := range optFns {
		fn(&opts)
	}

	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	trees := make([]*phylo.Tree, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	for i, l := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := Parse(l.text)
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line = l.no
				}
				return err
			}
			trees[i] = t
			if opts.Progress != nil {
				opts.Progress(i + 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait cancels gctx; only the caller's ctx tells a cut-short read apart.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return trees, nil
}

func readLines(r io.Reader) ([]line, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	var lines []line
	for no := 1; ; no++ {
		s, err := br.ReadString('\n')
		if text := strings.TrimSpace(s); text != "" {
			lines = append(lines, line{no: no, text: text})
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
