package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/npchunk/internal/chart"
)

func newTestApp(t *testing.T, cfg Config, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	var out bytes.Buffer
	a.in = strings.NewReader(stdin)
	a.out = &out
	return a, &out
}

func TestRun_PromptAndTextOutput(t *testing.T) {
	a, out := newTestApp(t, Config{Format: FormatText}, "Holmes sat.\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := strings.Join([]string{
		"Sentence: S",
		"├── NP",
		"│   └── N",
		"│       └── holmes",
		"└── VP",
		"    └── V",
		"        └── sat",
		"Noun Phrase Chunks",
		"holmes",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_InputFileAmbiguousSentence(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sentence.txt")
	outPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte("Holmes lit a pipe in the armchair."), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	a, _ := newTestApp(t, Config{InputPath: in, OutputPath: outPath}, "")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(b)
	if n := strings.Count(text, "Noun Phrase Chunks"); n != 2 {
		t.Fatalf("expected 2 trees in output, got %d:\n%s", n, text)
	}
	if n := strings.Count(text, "\nthe armchair\n"); n != 2 {
		t.Fatalf("expected 'the armchair' chunk for both trees:\n%s", text)
	}
}

func TestRun_UncoveredWordsIsNotAnError(t *testing.T) {
	a, out := newTestApp(t, Config{}, "Holmes ran home\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `Grammar does not cover some of the input words: "'ran'".`) {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_NoParse(t *testing.T) {
	a, out := newTestApp(t, Config{}, "the holmes\n")
	err := a.Run(context.Background())
	if !errors.Is(err, ErrNoParse) {
		t.Fatalf("expected ErrNoParse, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "Could not parse sentence.\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_EmptyStdin(t *testing.T) {
	a, _ := newTestApp(t, Config{}, "")
	if err := a.Run(context.Background()); err == nil {
		t.Fatalf("expected error on empty stdin")
	}
}

func TestAnalyze_ChunksPerParse(t *testing.T) {
	a, _ := newTestApp(t, Config{}, "")
	res, err := a.Analyze(context.Background(), "Holmes lit a pipe in the armchair.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !reflect.DeepEqual(res.Tokens, []string{"holmes", "lit", "a", "pipe", "in", "the", "armchair"}) {
		t.Fatalf("tokens=%q", res.Tokens)
	}
	if len(res.Parses) != 2 {
		t.Fatalf("expected 2 parses, got %d", len(res.Parses))
	}
	want := []string{"holmes", "a pipe", "the armchair"}
	for i, p := range res.Parses {
		if !reflect.DeepEqual(p.Chunks, want) {
			t.Fatalf("parse %d chunks=%q, want %q", i, p.Chunks, want)
		}
		if p.Bracketed != p.Tree.String() {
			t.Fatalf("bracketed form out of sync with tree")
		}
	}

	_, err = a.Analyze(context.Background(), "Moriarty smiled")
	var ue *chart.UncoveredError
	if !errors.As(err, &ue) || !reflect.DeepEqual(ue.Words, []string{"moriarty"}) {
		t.Fatalf("expected uncovered moriarty, got %v", err)
	}
}

func TestAnalyze_MaxTrees(t *testing.T) {
	a, _ := newTestApp(t, Config{MaxTrees: 1}, "")
	res, err := a.Analyze(context.Background(), "holmes lit a pipe in the armchair")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(res.Parses) != 1 {
		t.Fatalf("expected 1 parse, got %d", len(res.Parses))
	}
}

func TestRun_JSONAndYAMLFormats(t *testing.T) {
	a, out := newTestApp(t, Config{Format: FormatJSON}, "she smiled\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run json: %v", err)
	}
	body := strings.TrimPrefix(out.String(), "Sentence: ")
	var res Result
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("decode json: %v\n%s", err, body)
	}
	if len(res.Parses) != 1 || res.Parses[0].Bracketed != "(S (NP (N she)) (VP (V smiled)))" {
		t.Fatalf("unexpected json result: %+v", res)
	}

	a, out = newTestApp(t, Config{Format: FormatYAML}, "she smiled\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run yaml: %v", err)
	}
	body = strings.TrimPrefix(out.String(), "Sentence: ")
	res = Result{}
	if err := yaml.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, body)
	}
	if len(res.Parses) != 1 || !reflect.DeepEqual(res.Parses[0].Chunks, []string{"she"}) {
		t.Fatalf("unexpected yaml result: %+v", res)
	}
}

func TestRun_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	a, _ := newTestApp(t, Config{OutputPDFPath: pdfPath}, "holmes chuckled\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestNew_CustomGrammar(t *testing.T) {
	dir := t.TempDir()
	g := filepath.Join(dir, "toy.cfg")
	if err := os.WriteFile(g, []byte("S -> NP V\nNP -> \"dogs\"\nV -> \"bark\"\n"), 0o644); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	a, _ := newTestApp(t, Config{GrammarPath: g}, "")
	res, err := a.Analyze(context.Background(), "Dogs bark!")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(res.Parses) != 1 || !reflect.DeepEqual(res.Parses[0].Chunks, []string{"dogs"}) {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, err := New(Config{GrammarPath: filepath.Join(dir, "missing.cfg")}); err == nil {
		t.Fatalf("expected error for missing grammar")
	}
}

func TestNew_LogsGrammarSummary(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	p := filepath.Join(t.TempDir(), "g.cfg")
	if err := os.WriteFile(p, []byte("S -> NP V\nNP -> Det N | \"he\"\nDet -> \"the\"\nN -> \"dog\"\nV -> \"sat\"\n"), 0o644); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	if _, err := New(Config{GrammarPath: p}); err != nil {
		t.Fatalf("new: %v", err)
	}

	var summary map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err == nil && m["message"] == "grammar loaded" {
			summary = m
		}
	}
	if summary == nil {
		t.Fatalf("no grammar summary logged:\n%s", buf.String())
	}
	if summary["start"] != "S" || summary["productions"] != float64(6) || summary["lexical"] != float64(4) || summary["phrasal"] != float64(2) {
		t.Fatalf("unexpected summary: %v", summary)
	}
}
