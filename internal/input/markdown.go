package input

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader returns the text of a Markdown document with emphasis,
// links, headings and code markers stripped.
type MarkdownReader struct{}

func (MarkdownReader) Read(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var parts []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch n.Kind() {
	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
		return ""
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock {
			if t := blockText(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(t)
			}
			continue
		}
		inlineText(&buf, c, src)
	}
	return strings.TrimSpace(buf.String())
}

func inlineText(buf *bytes.Buffer, n ast.Node, src []byte) {
	if t, ok := n.(*ast.Text); ok {
		buf.Write(t.Segment.Value(src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		inlineText(buf, c, src)
	}
}
