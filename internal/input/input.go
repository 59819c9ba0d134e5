// Package input reads the sentence to parse from a file or an interactive
// prompt. File readers are chosen by extension; each returns plain text with
// markup removed.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoInput is returned by Prompt when the reader is exhausted before a
// line is read.
var ErrNoInput = errors.New("no input")

// Reader converts file content into plain text.
type Reader interface {
	Read(r io.Reader) (string, error)
}

// ForFile returns the reader for path's extension. Unknown extensions are
// read as plain text.
func ForFile(path string) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return MarkdownReader{}
	case ".html", ".htm":
		return HTMLReader{}
	case ".docx":
		return DOCXReader{}
	case ".pdf":
		return PDFReader{}
	default:
		return TextReader{}
	}
}

// ReadFile opens path and extracts its text.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	text, err := ForFile(path).Read(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// Prompt writes "Sentence: " to w and returns the next line from r without
// its line terminator.
func Prompt(r io.Reader, w io.Writer) (string, error) {
	if _, err := io.WriteString(w, "Sentence: "); err != nil {
		return "", err
	}
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TextReader returns content unchanged.
type TextReader struct{}

func (TextReader) Read(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
