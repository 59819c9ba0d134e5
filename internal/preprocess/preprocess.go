// Package preprocess turns raw sentence text into parser tokens.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// Words keep inner hyphens and apostrophes; any other non-space rune is
	// a token of its own.
	tokenRE = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-'][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)
	// Penn-style clitics split off the word they attach to.
	negRE    = regexp.MustCompile(`^(.+)(n't)$`)
	cliticRE = regexp.MustCompile(`^(.+)('s|'re|'ve|'ll|'d|'m)$`)

	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")
)

// Tokens lowercases sentence, splits it into words and punctuation, and
// keeps only tokens containing at least one letter.
func Tokens(sentence string) []string {
	var out []string
	for _, tok := range Split(Normalize(sentence)) {
		if hasLetter(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Normalize applies NFC composition, unifies apostrophes and lowercases.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)
	return cases.Lower(language.Und).String(s)
}

// Split tokenizes s without filtering.
func Split(s string) []string {
	var out []string
	for _, tok := range tokenRE.FindAllString(s, -1) {
		if m := negRE.FindStringSubmatch(tok); m != nil {
			out = append(out, m[1], m[2])
			continue
		}
		if m := cliticRE.FindStringSubmatch(tok); m != nil {
			out = append(out, m[1], m[2])
			continue
		}
		out = append(out, tok)
	}
	return out
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
