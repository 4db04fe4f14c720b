package phylo

import (
	"errors"
	"fmt"
	"strings"
)

// NoIndex marks a node without a global tip index.
const NoIndex = -1

var (
	// ErrEmptyTree is returned when building a tree without nodes.
	ErrEmptyTree = errors.New("tree has no nodes")

	// ErrInvalidParent is returned when a node references a parent that was
	// not added before it.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrUnlabeledTip is returned for tips without a label.
	ErrUnlabeledTip = errors.New("unlabeled tip")

	// ErrDuplicateTip is returned when two tips share a label.
	ErrDuplicateTip = errors.New("duplicate tip label")
)

// Node is a tree node.
type Node struct {
	Label    string
	Parent   int
	Children []int
	// Index is the global tip index, NoIndex for internal nodes and for tips
	// of trees that have not been numbered yet.
	Index int
}

// Tip reports whether the node is a leaf.
func (n *Node) Tip() bool {
	return len(n.Children) == 0
}

// Tree is a parsed phylogenetic tree.
type Tree struct {
	nodes []Node
	tips  []int
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with id i.
func (t *Tree) Node(i int) *Node { return &t.nodes[i] }

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Tips returns the node ids of all tips in input order.
func (t *Tree) Tips() []int { return t.tips }

// TipCount returns the number of tips.
func (t *Tree) TipCount() int { return len(t.tips) }

// EdgeCount returns the number of edges of the unrooted tree.
// A root of degree two is suppressed, joining its two edges into one.
func (t *Tree) EdgeCount() int {
	if len(t.nodes) < 2 {
		return 0
	}
	edges := len(t.nodes) - 1
	if len(t.nodes[0].Children) == 2 {
		edges--
	}
	return edges
}

// Labels returns the tip labels in input order.
func (t *Tree) Labels() []string {
	labels := make([]string, len(t.tips))
	for i, id := range t.tips {
		labels[i] = t.nodes[id].Label
	}
	return labels
}

// Numbered reports whether every tip carries a global index.
func (t *Tree) Numbered() bool {
	for _, id := range t.tips {
		if t.nodes[id].Index == NoIndex {
			return false
		}
	}
	return len(t.tips) > 0
}

// Newick renders the topology (labels only) in Newick format.
func (t *Tree) Newick() string {
	var sb strings.Builder
	t.writeNewick(&sb, 0)
	sb.WriteByte(';')
	return sb.String()
}

func (t *Tree) writeNewick(sb *strings.Builder, id int) {
	n := &t.nodes[id]
	if len(n.Children) > 0 {
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			t.writeNewick(sb, c)
		}
		sb.WriteByte(')')
	}
	sb.WriteString(n.Label)
}

// Builder assembles a Tree node by node.
type Builder struct {
	nodes []Node
	err   error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a node below parent and returns its id. The first node is the
// root and must use parent -1.
func (b *Builder) Add(parent int, label string) int {
	id := len(b.nodes)
	if b.err == nil {
		switch {
		case id == 0 && parent != -1:
			b.err = fmt.Errorf("%w: root must have parent -1, got %d", ErrInvalidParent, parent)
		case id > 0 && (parent < 0 || parent >= id):
			b.err = fmt.Errorf("%w: node %d references %d", ErrInvalidParent, id, parent)
		}
	}
	b.nodes = append(b.nodes, Node{Label: label, Parent: parent, Index: NoIndex})
	if b.err == nil && parent >= 0 {
		b.nodes[parent].Children = append(b.nodes[parent].Children, id)
	}
	return id
}

// Build validates and returns the tree.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.nodes) == 0 {
		return nil, ErrEmptyTree
	}

	t := &Tree{nodes: b.nodes}
	seen := make(map[string]struct{})
	for id := range t.nodes {
		n := &t.nodes[id]
		if !n.Tip() {
			continue
		}
		if n.Label == "" {
			return nil, fmt.Errorf("%w: node %d", ErrUnlabeledTip, id)
		}
		if _, dup := seen[n.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTip, n.Label)
		}
		seen[n.Label] = struct{}{}
		t.tips = append(t.tips, id)
	}
	b.nodes = nil
	return t, nil
}
