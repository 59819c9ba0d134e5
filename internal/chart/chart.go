// Package chart implements an all-paths bottom-up chart parser for the
// grammars of package grammar.
//
// The chart records, for every span of the input and every symbol that can
// cover it, each way the symbol was derived. That packed forest is then
// unfolded into individual trees on demand, so callers that only want the
// first few parses of an ambiguous sentence do not pay for the rest.
package chart

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/npchunk/internal/grammar"
	"github.com/hyperifyio/npchunk/internal/tree"
)

// UncoveredError reports tokens that no terminal rule produces.
type UncoveredError struct {
	Words []string
}

// Error renders the message NLTK's coverage check raises: each word as a
// Python string literal, and the joined list quoted once more.
func (e *UncoveredError) Error() string {
	quoted := make([]string, len(e.Words))
	for i, w := range e.Words {
		quoted[i] = pyQuote(w)
	}
	return "Grammar does not cover some of the input words: " + pyQuote(strings.Join(quoted, ", ")) + "."
}

// pyQuote quotes s the way Python's repr quotes a str: single quotes unless
// s holds a single quote and no double quote.
func pyQuote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case q:
			b.WriteRune('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

// Parser parses token sequences against a fixed grammar. It holds no
// per-parse state and is safe for concurrent use.
type Parser struct {
	grammar *grammar.Grammar
	prods   []grammar.Production

	// MaxTrees caps how many trees Parse collects. Zero means no cap.
	MaxTrees int
}

// New returns a parser for g.
func New(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g, prods: g.Productions()}
}

// Parse returns the parse trees of tokens rooted at the grammar's start
// symbol, up to MaxTrees. No parse is an empty result, not an error.
func (p *Parser) Parse(ctx context.Context, tokens []string) ([]*tree.Tree, error) {
	var out []*tree.Tree
	err := p.Each(ctx, tokens, func(t *tree.Tree) bool {
		out = append(out, t)
		return p.MaxTrees <= 0 || len(out) < p.MaxTrees
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each yields parse trees one at a time until fn returns false, the trees
// run out, or ctx is done. Every yielded tree is an independent copy the
// caller may keep. Tokens the grammar does not cover produce an
// *UncoveredError before any parsing happens.
func (p *Parser) Each(ctx context.Context, tokens []string, fn func(*tree.Tree) bool) error {
	if missing := p.grammar.Uncovered(tokens); len(missing) > 0 {
		return &UncoveredError{Words: missing}
	}
	if len(tokens) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c := p.build(tokens)
	log.Debug().Int("tokens", len(tokens)).Int("entries", len(c.entries)).Msg("chart built")

	var ctxErr error
	start := p.grammar.Start()
	c.unfold(start, 0, len(tokens), map[edge]bool{}, func(t *tree.Tree) bool {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			return false
		}
		return fn(t.Clone())
	})
	return ctxErr
}

type edge struct {
	sym        string
	start, end int
}

// child points at the chart entry (or token) filling one right-hand side slot.
type child struct {
	sym        string
	terminal   bool
	start, end int
}

type derivation struct {
	prod     int
	children []child
}

type chart struct {
	prods   []grammar.Production
	tokens  []string
	entries map[edge][]derivation
}

func (c *chart) has(sym string, start, end int) bool {
	_, ok := c.entries[edge{sym, start, end}]
	return ok
}

func (p *Parser) build(tokens []string) *chart {
	c := &chart{prods: p.prods, tokens: tokens, entries: map[edge][]derivation{}}
	n := len(tokens)
	for length := 1; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			end := start + length
			for i, prod := range c.prods {
				if prod.IsUnary() || len(prod.RHS) > length {
					continue
				}
				for _, kids := range c.match(prod.RHS, start, end) {
					e := edge{prod.LHS, start, end}
					c.entries[e] = append(c.entries[e], derivation{prod: i, children: kids})
				}
			}
			c.closeUnary(start, end)
		}
	}
	return c
}

// match returns every way rhs can cover tokens[start:end] with each item
// taking a non-empty, already-recognised sub-span.
func (c *chart) match(rhs []grammar.Item, start, end int) [][]child {
	if len(rhs) == 0 {
		if start == end {
			return [][]child{nil}
		}
		return nil
	}
	item, rest := rhs[0], rhs[1:]
	var out [][]child
	for mid := start + 1; mid <= end-len(rest); mid++ {
		var head child
		if item.Terminal {
			if mid != start+1 || c.tokens[start] != item.Symbol {
				continue
			}
			head = child{sym: item.Symbol, terminal: true, start: start, end: mid}
		} else {
			if !c.has(item.Symbol, start, mid) {
				continue
			}
			head = child{sym: item.Symbol, start: start, end: mid}
		}
		for _, tail := range c.match(rest, mid, end) {
			kids := make([]child, 0, len(rhs))
			kids = append(kids, head)
			kids = append(kids, tail...)
			out = append(out, kids)
		}
	}
	return out
}

// closeUnary applies A -> B rules over one span until nothing new appears.
func (c *chart) closeUnary(start, end int) {
	for changed := true; changed; {
		changed = false
		for i, prod := range c.prods {
			if !prod.IsUnary() || !c.has(prod.RHS[0].Symbol, start, end) {
				continue
			}
			e := edge{prod.LHS, start, end}
			if c.derivedBy(e, i) {
				continue
			}
			kid := child{sym: prod.RHS[0].Symbol, start: start, end: end}
			c.entries[e] = append(c.entries[e], derivation{prod: i, children: []child{kid}})
			changed = true
		}
	}
}

func (c *chart) derivedBy(e edge, prod int) bool {
	for _, d := range c.entries[e] {
		if d.prod == prod {
			return true
		}
	}
	return false
}

// unfold yields every tree for sym over [start,end). An edge already on the
// current path is skipped, which cuts unary cycles such as A -> B, B -> A.
// It returns false once yield has asked to stop.
func (c *chart) unfold(sym string, start, end int, path map[edge]bool, yield func(*tree.Tree) bool) bool {
	e := edge{sym, start, end}
	if path[e] {
		return true
	}
	path[e] = true
	defer delete(path, e)

	for _, d := range c.entries[e] {
		kids := make([]*tree.Tree, len(d.children))
		ok := c.expand(d.children, 0, kids, path, func(ks []*tree.Tree) bool {
			own := make([]*tree.Tree, len(ks))
			copy(own, ks)
			return yield(tree.New(sym, own...))
		})
		if !ok {
			return false
		}
	}
	return true
}

func (c *chart) expand(children []child, i int, acc []*tree.Tree, path map[edge]bool, yield func([]*tree.Tree) bool) bool {
	if i == len(children) {
		return yield(acc)
	}
	ch := children[i]
	if ch.terminal {
		acc[i] = tree.NewLeaf(ch.sym)
		return c.expand(children, i+1, acc, path, yield)
	}
	return c.unfold(ch.sym, ch.start, ch.end, path, func(t *tree.Tree) bool {
		acc[i] = t
		return c.expand(children, i+1, acc, path, yield)
	})
}
