package tree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTree is wrapped by every error that reports a structural fault:
// a nil node, an unlabeled internal node, a leaf with children, an internal
// node without children, a node reachable from two parents, or a cycle.
var ErrInvalidTree = errors.New("invalid tree")

// MaxDepth bounds traversal depth. Grammar-produced trees for a sentence are
// far shallower; anything deeper is treated as malformed.
const MaxDepth = 10000

// Tree is a parse tree node. Internal nodes carry a grammar symbol in Label
// and at least one child. Leaves carry a token in Label and no children.
type Tree struct {
	Label    string
	Children []*Tree
	Leaf     bool
}

// New builds an internal node.
func New(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// NewLeaf builds a terminal leaf holding token.
func NewLeaf(token string) *Tree {
	return &Tree{Label: token, Leaf: true}
}

// Walk visits t and every descendant in pre-order (a node before its
// children, children left to right). It returns the first error returned by
// fn, or an error wrapping ErrInvalidTree when the structure is malformed.
// Traversal uses an explicit stack, so depth is bounded by MaxDepth rather
// than the goroutine stack.
func (t *Tree) Walk(fn func(node *Tree, depth int) error) error {
	if t == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	type frame struct {
		node  *Tree
		depth int
	}
	seen := make(map[*Tree]struct{})
	stack := []frame{{node: t}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := checkNode(f.node, f.depth); err != nil {
			return err
		}
		if _, ok := seen[f.node]; ok {
			return fmt.Errorf("%w: node %q reached twice (cycle or shared subtree)", ErrInvalidTree, f.node.Label)
		}
		seen[f.node] = struct{}{}
		if err := fn(f.node, f.depth); err != nil {
			return err
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
	return nil
}

func checkNode(n *Tree, depth int) error {
	switch {
	case n == nil:
		return fmt.Errorf("%w: nil child", ErrInvalidTree)
	case depth > MaxDepth:
		return fmt.Errorf("%w: depth exceeds %d", ErrInvalidTree, MaxDepth)
	case n.Leaf && len(n.Children) > 0:
		return fmt.Errorf("%w: leaf %q has children", ErrInvalidTree, n.Label)
	case !n.Leaf && n.Label == "":
		return fmt.Errorf("%w: internal node without label", ErrInvalidTree)
	case !n.Leaf && len(n.Children) == 0:
		return fmt.Errorf("%w: internal node %q has no children", ErrInvalidTree, n.Label)
	}
	return nil
}

// Validate reports whether t is a well-formed tree.
func (t *Tree) Validate() error {
	return t.Walk(func(*Tree, int) error { return nil })
}

// Subtrees returns, in pre-order, every internal node for which pred returns
// true. A nil pred matches all internal nodes. Leaves are never returned.
func (t *Tree) Subtrees(pred func(*Tree) bool) ([]*Tree, error) {
	var out []*Tree
	err := t.Walk(func(n *Tree, _ int) error {
		if !n.Leaf && (pred == nil || pred(n)) {
			out = append(out, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Leaves returns the tokens under t from left to right, or an error wrapping
// ErrInvalidTree if t is malformed.
func (t *Tree) Leaves() ([]string, error) {
	var out []string
	err := t.Walk(func(n *Tree, _ int) error {
		if n.Leaf {
			out = append(out, n.Label)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Flatten joins the leaves of t with single spaces. A malformed tree
// flattens to "".
func (t *Tree) Flatten() string {
	leaves, err := t.Leaves()
	if err != nil {
		return ""
	}
	return strings.Join(leaves, " ")
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	c := &Tree{Label: t.Label, Leaf: t.Leaf}
	if len(t.Children) > 0 {
		c.Children = make([]*Tree, len(t.Children))
		for i, ch := range t.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// Equal reports structural equality.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Label != b.Label || a.Leaf != b.Leaf || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
