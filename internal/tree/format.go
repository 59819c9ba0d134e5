package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// String renders t in bracketed form, e.g. (S (NP (N holmes)) (VP (V sat))).
func (t *Tree) String() string {
	var b strings.Builder
	writeBracketed(&b, t, 0)
	return b.String()
}

func writeBracketed(b *strings.Builder, t *Tree, depth int) {
	switch {
	case t == nil:
		b.WriteString("<nil>")
		return
	case depth > MaxDepth:
		b.WriteString("...")
		return
	case t.Leaf:
		b.WriteString(t.Label)
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, c := range t.Children {
		b.WriteByte(' ')
		writeBracketed(b, c, depth+1)
	}
	b.WriteByte(')')
}

// Pretty writes t one node per line with box-drawing connectors:
//
//	S
//	├── NP
//	│   └── N
//	│       └── holmes
//	└── VP
//	    └── V
//	        └── sat
func (t *Tree) Pretty(w io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(t.Label)
	bw.WriteByte('\n')
	writePretty(bw, t.Children, "")
	return bw.Flush()
}

func writePretty(w *bufio.Writer, kids []*Tree, prefix string) {
	for i, c := range kids {
		branch, next := "├── ", "│   "
		if i == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		w.WriteString(prefix)
		w.WriteString(branch)
		w.WriteString(c.Label)
		w.WriteByte('\n')
		writePretty(w, c.Children, prefix+next)
	}
}

// ParseBracketed reads the form produced by String. The root must be a
// bracketed node; bare atoms inside brackets become leaves.
func ParseBracketed(s string) (*Tree, error) {
	toks := lexBracketed(s)
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidTree)
	}
	if toks[0] != "(" {
		return nil, fmt.Errorf("%w: expected '(' at start, got %q", ErrInvalidTree, toks[0])
	}
	pos := 0
	t, err := parseBracketed(toks, &pos, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(toks) {
		return nil, fmt.Errorf("%w: unexpected %q after root", ErrInvalidTree, toks[pos])
	}
	return t, nil
}

func parseBracketed(toks []string, pos *int, depth int) (*Tree, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: depth exceeds %d", ErrInvalidTree, MaxDepth)
	}
	// toks[*pos] is "(" here
	*pos++
	if *pos >= len(toks) || toks[*pos] == "(" || toks[*pos] == ")" {
		return nil, fmt.Errorf("%w: missing label after '('", ErrInvalidTree)
	}
	node := &Tree{Label: toks[*pos]}
	*pos++
	for {
		if *pos >= len(toks) {
			return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidTree, node.Label)
		}
		switch toks[*pos] {
		case ")":
			*pos++
			if len(node.Children) == 0 {
				return nil, fmt.Errorf("%w: internal node %q has no children", ErrInvalidTree, node.Label)
			}
			return node, nil
		case "(":
			child, err := parseBracketed(toks, pos, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		default:
			node.Children = append(node.Children, NewLeaf(toks[*pos]))
			*pos++
		}
	}
}

func lexBracketed(s string) []string {
	var toks []string
	start := -1
	flush := func(i int) {
		if start >= 0 {
			toks = append(toks, s[start:i])
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case r == '(' || r == ')':
			flush(i)
			toks = append(toks, string(r))
		case unicode.IsSpace(r):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return toks
}
