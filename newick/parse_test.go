package newick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		labels []string
		edges  int
		newick string
	}{
		{
			name:   "unrooted",
			input:  "((A,B),C,D);",
			labels: []string{"A", "B", "C", "D"},
			edges:  5,
			newick: "((A,B),C,D);",
		},
		{
			name:   "rooted",
			input:  "((A,B),(C,D));",
			labels: []string{"A", "B", "C", "D"},
			edges:  5,
			newick: "((A,B),(C,D));",
		},
		{
			name:   "branch lengths and support",
			input:  "((A:0.1,B:0.2)90:0.3,C:1,D:1.5);",
			labels: []string{"A", "B", "C", "D"},
			edges:  5,
			newick: "((A,B),C,D);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.labels, tr.Labels())
			assert.Equal(t, tt.edges, tr.EdgeCount())
			assert.Equal(t, tt.newick, tr.Newick())
			assert.False(t, tr.Numbered())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("((A,A),C,D);")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Zero(t, pe.Line)
}

func TestReadForest(t *testing.T) {
	var sb strings.Builder
	for i := range 50 {
		fmt.Fprintf(&sb, "((A%d,B),C,D);\n", i)
		if i%7 == 0 {
			sb.WriteString("\n   \n")
		}
	}

	var parsed atomic.Int64
	trees, err := ReadForest(context.Background(), strings.NewReader(sb.String()), func(o *Options) {
		o.Workers = 4
		o.Progress = func(int) { parsed.Add(1) }
	})
	require.NoError(t, err)
	require.Len(t, trees, 50)
	assert.EqualValues(t, 50, parsed.Load())

	for i, tr := range trees {
		assert.Equal(t, fmt.Sprintf("A%d", i), tr.Labels()[0])
	}
}

func TestReadForest_NoTrailingNewline(t *testing.T) {
	trees, err := ReadForest(context.Background(), bytes.NewBufferString("((A,B),C,D);\r\n((A,C),B,D);"))
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Equal(t, "((A,C),B,D);", trees[1].Newick())
}

func TestReadForest_ParseErrorLine(t *testing.T) {
	input := "((A,B),C,D);\n\n((A,A),C,D);\n"
	_, err := ReadForest(context.Background(), strings.NewReader(input))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadForest_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadForest(ctx, strings.NewReader("((A,B),C,D);\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadForest_SharedContext(t *testing.T) {
	ctx := context.Background()
	for _, workers := range []int{1, 3} {
		for range 2 {
			trees, err := ReadForest(ctx, strings.NewReader("((A,B),C,D);\n((A,C),B,D);\n"), func(o *Options) {
				o.Workers = workers
			})
			require.NoError(t, err, "workers=%d", workers)
			require.Len(t, trees, 2)
		}
	}
	assert.NoError(t, ctx.Err())
}

func TestReadForest_Empty(t *testing.T) {
	trees, err := ReadForest(context.Background(), strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, trees)
}
