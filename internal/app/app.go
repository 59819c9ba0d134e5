package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/npchunk/internal/chart"
	"github.com/hyperifyio/npchunk/internal/chunk"
	"github.com/hyperifyio/npchunk/internal/grammar"
	"github.com/hyperifyio/npchunk/internal/input"
	"github.com/hyperifyio/npchunk/internal/preprocess"
	"github.com/hyperifyio/npchunk/internal/tree"
)

// ErrNoParse is returned by Run when the sentence is covered by the grammar
// but no tree spans it. The CLI maps it to a nonzero exit.
var ErrNoParse = errors.New("could not parse sentence")

type App struct {
	cfg    Config
	parser *chart.Parser

	in  io.Reader
	out io.Writer
}

// Parse is one parse tree of a sentence and its noun phrase chunks.
type Parse struct {
	Tree      *tree.Tree `json:"-" yaml:"-"`
	Bracketed string     `json:"tree" yaml:"tree"`
	Chunks    []string   `json:"chunks" yaml:"chunks"`
}

// Result is everything Analyze learns about a sentence.
type Result struct {
	Sentence string   `json:"sentence" yaml:"sentence"`
	Tokens   []string `json:"tokens" yaml:"tokens"`
	Parses   []Parse  `json:"parses" yaml:"parses"`
}

func New(cfg Config) (*App, error) {
	g := grammar.Default()
	if cfg.GrammarPath != "" {
		loaded, err := grammar.Load(cfg.GrammarPath)
		if err != nil {
			return nil, fmt.Errorf("load grammar: %w", err)
		}
		g = loaded
	}
	p := chart.New(g)
	p.MaxTrees = cfg.MaxTrees
	logGrammar(g)
	return &App{cfg: cfg, parser: p, in: os.Stdin, out: os.Stdout}, nil
}

// logGrammar prints a one-line grammar summary at debug level (-v).
func logGrammar(g *grammar.Grammar) {
	prods := g.Productions()
	lexical := 0
	for _, p := range prods {
		if p.IsLexical() {
			lexical++
		}
	}
	log.Debug().
		Str("start", g.Start()).
		Int("productions", len(prods)).
		Int("lexical", lexical).
		Int("phrasal", len(prods)-lexical).
		Msg("grammar loaded")
}

// Analyze tokenizes sentence, parses it and extracts the chunks of every
// tree. An uncovered word surfaces as *chart.UncoveredError with the tokens
// filled in on the returned Result. No parse is an empty Parses slice.
func (a *App) Analyze(ctx context.Context, sentence string) (Result, error) {
	res := Result{Sentence: sentence, Tokens: preprocess.Tokens(sentence), Parses: []Parse{}}
	if res.Tokens == nil {
		res.Tokens = []string{}
	}
	trees, err := a.parser.Parse(ctx, res.Tokens)
	if err != nil {
		return res, err
	}
	for _, t := range trees {
		chunks, err := chunk.Extract(t)
		if err != nil {
			return res, fmt.Errorf("extract chunks: %w", err)
		}
		res.Parses = append(res.Parses, Parse{Tree: t, Bracketed: t.String(), Chunks: chunk.Texts(chunks)})
	}
	log.Debug().Int("tokens", len(res.Tokens)).Int("parses", len(res.Parses)).Msg("sentence analyzed")
	return res, nil
}

// Run reads one sentence, parses it and writes every tree followed by its
// noun phrase chunks.
func (a *App) Run(ctx context.Context) error {
	sentence, err := a.readSentence()
	if err != nil {
		return err
	}

	w, closeOut, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	res, err := a.Analyze(ctx, sentence)
	var uncovered *chart.UncoveredError
	if errors.As(err, &uncovered) {
		// Not a failure: tell the user which words the grammar lacks.
		fmt.Fprintln(w, uncovered.Error())
		return nil
	}
	if err != nil {
		return err
	}
	if len(res.Parses) == 0 {
		fmt.Fprintln(w, "Could not parse sentence.")
		return ErrNoParse
	}

	if err := writeResult(w, res, a.cfg.Format); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if a.cfg.OutputPDFPath != "" {
		if err := writeReportPDF(res, a.cfg.OutputPDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote pdf report")
	}
	return nil
}

func (a *App) readSentence() (string, error) {
	if a.cfg.InputPath != "" {
		s, err := input.ReadFile(a.cfg.InputPath)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return s, nil
	}
	s, err := input.Prompt(a.in, a.out)
	if err != nil {
		return "", fmt.Errorf("read sentence: %w", err)
	}
	return s, nil
}

func (a *App) openOutput() (io.Writer, func(), error) {
	if a.cfg.OutputPath == "" || a.cfg.OutputPath == "-" {
		return a.out, func() {}, nil
	}
	f, err := os.Create(a.cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Str("out", a.cfg.OutputPath).Msg("close output")
		}
	}, nil
}
