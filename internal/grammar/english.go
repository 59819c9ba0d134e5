package grammar

// Terminals is the lexicon of the built-in English grammar.
const Terminals = `
Adj -> "country" | "dreadful" | "enigmatical" | "little" | "moist" | "red"
Adv -> "down" | "here" | "never"
Conj -> "and" | "until"
Det -> "a" | "an" | "his" | "my" | "the"
N -> "armchair" | "companion" | "day" | "door" | "hand" | "he" | "himself"
N -> "holmes" | "home" | "i" | "mess" | "paint" | "palm" | "pipe" | "she"
N -> "smile" | "thursday" | "walk" | "we" | "word"
P -> "at" | "before" | "in" | "of" | "on" | "to"
V -> "arrived" | "came" | "chuckled" | "had" | "lit" | "said" | "sat"
V -> "smiled" | "tell" | "were"
`

// Nonterminals is the phrase structure of the built-in English grammar.
const Nonterminals = `
S -> NP VP | S Conj S

NP -> N | Det N | Det AdjP N | NP PP
AdjP -> Adj | Adj AdjP

VP -> V | V NP | V NP PP | V PP | V Adv | VP Adv | V NP Adv

PP -> P NP
`

// Default returns the built-in English grammar with start symbol S.
func Default() *Grammar {
	return MustParse(Nonterminals + Terminals)
}
