package input

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestForFile(t *testing.T) {
	cases := map[string]Reader{
		"s.txt":      TextReader{},
		"s":          TextReader{},
		"S.MD":       MarkdownReader{},
		"s.markdown": MarkdownReader{},
		"s.htm":      HTMLReader{},
		"s.html":     HTMLReader{},
		"s.docx":     DOCXReader{},
		"s.pdf":      PDFReader{},
	}
	for name, want := range cases {
		if got := ForFile(name); got != want {
			t.Fatalf("ForFile(%q)=%T, want %T", name, got, want)
		}
	}
}

func TestReadFile_Text(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sentence.txt")
	if err := os.WriteFile(p, []byte("Holmes sat.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "Holmes sat.\n" {
		t.Fatalf("text=%q", got)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestMarkdownReader(t *testing.T) {
	src := "# Chapter\n\nHolmes **sat** in the [armchair](https://example.com).\n\n```\ncode is skipped\n```\n\n- he chuckled\n"
	got, err := MarkdownReader{}.Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Chapter\nHolmes sat in the armchair.\nhe chuckled"
	if got != want {
		t.Fatalf("markdown text=%q, want %q", got, want)
	}
}

func TestHTMLReader(t *testing.T) {
	src := `<html><head><title>T</title><style>p{}</style></head>
<body><nav>menu</nav><main><p>Holmes   lit
his pipe.</p><script>x()</script></main><footer>f</footer></body></html>`
	got, err := HTMLReader{}.Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "Holmes lit\nhis pipe." {
		t.Fatalf("html text=%q", got)
	}
}

func TestDOCXReader(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("Holmes sat in the armchair.")
	w.AddParagraph().AddText("He chuckled.")
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	got, err := DOCXReader{}.Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "Holmes sat in the armchair.\nHe chuckled." {
		t.Fatalf("docx text=%q", got)
	}
	if _, err := (DOCXReader{}).Read(strings.NewReader("not a zip")); err == nil {
		t.Fatalf("expected error for invalid docx")
	}
}

func TestPDFReader_Invalid(t *testing.T) {
	if _, err := (PDFReader{}).Read(strings.NewReader("not a pdf")); err == nil {
		t.Fatalf("expected error for invalid pdf")
	}
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	got, err := Prompt(strings.NewReader("Holmes sat.\r\nignored\n"), &out)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != "Holmes sat." || out.String() != "Sentence: " {
		t.Fatalf("prompt got=%q out=%q", got, out.String())
	}
	got, err = Prompt(strings.NewReader("no newline"), &out)
	if err != nil || got != "no newline" {
		t.Fatalf("prompt without newline: got=%q err=%v", got, err)
	}
	if _, err := Prompt(strings.NewReader(""), &out); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
