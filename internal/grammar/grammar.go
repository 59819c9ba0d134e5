// Package grammar holds context-free grammars written one rule per line:
//
//	S -> NP VP | S Conj S
//	N -> "holmes" | "pipe"
//
// Quoted items are terminal words, bare items are nonterminal symbols. The
// left-hand side of the first rule is the start symbol.
package grammar

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ErrSyntax is wrapped by every grammar text error.
var ErrSyntax = errors.New("grammar syntax error")

var symbolRe = regexp.MustCompile(`^[\w/][\w/^<>-]*$`)

// Item is one element of a production's right-hand side.
type Item struct {
	Symbol   string
	Terminal bool
}

func (it Item) String() string {
	if it.Terminal {
		return fmt.Sprintf("%q", it.Symbol)
	}
	return it.Symbol
}

// Production is a single rule LHS -> RHS.
type Production struct {
	LHS string
	RHS []Item
}

// IsUnary reports a rule of the form A -> B with B a nonterminal.
func (p Production) IsUnary() bool {
	return len(p.RHS) == 1 && !p.RHS[0].Terminal
}

// IsLexical reports a rule whose right-hand side is terminals only.
func (p Production) IsLexical() bool {
	for _, it := range p.RHS {
		if !it.Terminal {
			return false
		}
	}
	return len(p.RHS) > 0
}

func (p Production) String() string {
	items := make([]string, len(p.RHS))
	for i, it := range p.RHS {
		items[i] = it.String()
	}
	return p.LHS + " -> " + strings.Join(items, " ")
}

// Grammar is immutable after Parse returns.
type Grammar struct {
	start       string
	productions []Production
	words       map[string]struct{}
}

// Parse reads grammar text. Blank lines and lines starting with '#' are
// skipped; a left-hand side may appear on several lines.
func Parse(text string) (*Grammar, error) {
	g := &Grammar{
		words: map[string]struct{}{},
	}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prods, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		for _, p := range prods {
			g.add(p)
		}
	}
	if len(g.productions) == 0 {
		return nil, errors.Wrap(ErrSyntax, "no productions")
	}
	return g, nil
}

// MustParse is Parse for grammars known to be valid at compile time.
func MustParse(text string) *Grammar {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// Load reads and parses a grammar file.
func Load(path string) (*Grammar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read grammar %s", path)
	}
	g, err := Parse(string(b))
	if err != nil {
		return nil, errors.Wrapf(err, "grammar %s", path)
	}
	return g, nil
}

func (g *Grammar) add(p Production) {
	if g.start == "" {
		g.start = p.LHS
	}
	g.productions = append(g.productions, p)
	for _, it := range p.RHS {
		if it.Terminal {
			g.words[it.Symbol] = struct{}{}
		}
	}
}

func parseLine(line string) ([]Production, error) {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		return nil, errors.Wrapf(ErrSyntax, "missing '->' in %q", line)
	}
	lhs := strings.TrimSpace(line[:arrow])
	if lhs == "" {
		return nil, errors.Wrapf(ErrSyntax, "empty left-hand side in %q", line)
	}
	if !symbolRe.MatchString(lhs) {
		return nil, errors.Wrapf(ErrSyntax, "invalid left-hand side %q", lhs)
	}

	alts, err := splitAlternatives(line[arrow+2:])
	if err != nil {
		return nil, err
	}
	out := make([]Production, 0, len(alts))
	for _, rhs := range alts {
		if len(rhs) == 0 {
			return nil, errors.Wrapf(ErrSyntax, "empty alternative for %s", lhs)
		}
		out = append(out, Production{LHS: lhs, RHS: rhs})
	}
	return out, nil
}

// splitAlternatives tokenizes a right-hand side into '|'-separated item
// lists, honoring single and double quotes.
func splitAlternatives(s string) ([][]Item, error) {
	var (
		alts [][]Item
		cur  []Item
	)
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '|':
			alts = append(alts, cur)
			cur = nil
			i++
		case r == '"' || r == '\'':
			j := i + 1
			for j < len(rs) && rs[j] != r {
				j++
			}
			if j >= len(rs) {
				return nil, errors.Wrapf(ErrSyntax, "unterminated quote in %q", s)
			}
			word := string(rs[i+1 : j])
			if word == "" {
				return nil, errors.Wrapf(ErrSyntax, "empty terminal in %q", s)
			}
			cur = append(cur, Item{Symbol: word, Terminal: true})
			i = j + 1
		default:
			j := i
			for j < len(rs) && !unicode.IsSpace(rs[j]) && rs[j] != '|' && rs[j] != '"' && rs[j] != '\'' {
				j++
			}
			sym := string(rs[i:j])
			if !symbolRe.MatchString(sym) {
				return nil, errors.Wrapf(ErrSyntax, "invalid symbol %q", sym)
			}
			cur = append(cur, Item{Symbol: sym})
			i = j
		}
	}
	alts = append(alts, cur)
	return alts, nil
}

// Start returns the start symbol.
func (g *Grammar) Start() string { return g.start }

// Productions returns a copy of all rules in definition order.
func (g *Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	copy(out, g.productions)
	return out
}

// Covers reports whether some rule produces word.
func (g *Grammar) Covers(word string) bool {
	_, ok := g.words[word]
	return ok
}

// Uncovered returns the tokens no rule produces, in input order, repeats
// included.
func (g *Grammar) Uncovered(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if !g.Covers(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// String renders one production per line.
func (g *Grammar) String() string {
	var b strings.Builder
	b.WriteString("Grammar with ")
	b.WriteString(fmt.Sprint(len(g.productions)))
	b.WriteString(" productions (start state = ")
	b.WriteString(g.start)
	b.WriteString(")\n")
	for _, p := range g.productions {
		b.WriteString("    ")
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	return b.String()
}
