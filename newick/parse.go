package newick

import (
	"errors"
	"fmt"
	"strings"

	gonewick "github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"

	"github.com/hupe1980/splitmatch/phylo"
)

// ErrParse matches every *ParseError.
var ErrParse = errors.New("newick parse error")

// ParseError reports a tree that could not be read.
type ParseError struct {
	// Line is the 1-based line of the tree set, 0 for single trees.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("newick: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("newick: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse as a match.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Parse reads a single Newick tree.
func Parse(s string) (*phylo.Tree, error) {
	t, err := gonewick.NewParser(strings.NewReader(s)).Parse()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	pt, err := convert(t)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return pt, nil
}

type frame struct {
	node   *tree.Node
	from   *tree.Node
	parent int
}

// convert copies the topology of t in preorder, so every parent is added
// before its children.
func convert(t *tree.Tree) (*phylo.Tree, error) {
	root := t.Root()
	if root == nil {
		return nil, phylo.ErrEmptyTree
	}

	b := phylo.NewBuilder()
	stack := []frame{{node: root, parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		label := ""
		if f.node.Tip() {
			label = f.node.Name()
		}
		id := b.Add(f.parent, label)

		neigh := f.node.Neigh()
		for i := len(neigh) - 1; i >= 0; i-- {
			if neigh[i] == f.from {
				continue
			}
			stack = append(stack, frame{node: neigh[i], from: f.node, parent: id})
		}
	}
	return b.Build()
}
