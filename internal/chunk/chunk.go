// Package chunk extracts minimal noun-phrase chunks from parse trees.
//
// A chunk is an internal node labeled NP with no NP among its strict
// descendants. When NPs nest, only the innermost ones are reported; the
// outer NP and any non-minimal ancestor are skipped.
package chunk

import (
	"github.com/hyperifyio/npchunk/internal/tree"
)

// DefaultLabel is the phrase label Extract looks for.
const DefaultLabel = "NP"

// Extractor finds minimal subtrees carrying Label. The zero value uses
// DefaultLabel.
type Extractor struct {
	Label string
}

// Extract returns the minimal NP chunks of t in pre-order.
func Extract(t *tree.Tree) ([]*tree.Tree, error) {
	return Extractor{}.Extract(t)
}

// Extract returns the minimal subtrees of t labeled e.Label, in pre-order.
// Entries point into t; nothing is copied. A tree without matching nodes
// yields an empty, non-nil slice. Malformed input yields an error wrapping
// tree.ErrInvalidTree.
func (e Extractor) Extract(t *tree.Tree) ([]*tree.Tree, error) {
	label := e.Label
	if label == "" {
		label = DefaultLabel
	}

	var order []*tree.Tree
	if err := t.Walk(func(n *tree.Tree, _ int) error {
		order = append(order, n)
		return nil
	}); err != nil {
		return nil, err
	}

	// Children follow their parent in pre-order, so a reverse sweep sees every
	// node after all of its descendants.
	nested := make(map[*tree.Tree]bool, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		for _, c := range n.Children {
			if nested[c] || matches(c, label) {
				nested[n] = true
				break
			}
		}
	}

	out := make([]*tree.Tree, 0)
	for _, n := range order {
		if matches(n, label) && !nested[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

func matches(n *tree.Tree, label string) bool {
	return !n.Leaf && n.Label == label
}

// ExtractAll runs Extract over each tree independently and returns the
// results in the same order. The first malformed tree aborts the run.
func ExtractAll(trees []*tree.Tree) ([][]*tree.Tree, error) {
	out := make([][]*tree.Tree, 0, len(trees))
	for _, t := range trees {
		chunks, err := Extract(t)
		if err != nil {
			return nil, err
		}
		out = append(out, chunks)
	}
	return out, nil
}

// Texts flattens each chunk into its space-joined tokens.
func Texts(chunks []*tree.Tree) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Flatten())
	}
	return out
}
