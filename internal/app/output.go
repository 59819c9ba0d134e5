package app

import (
	"encoding/json"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

func writeResult(w io.Writer, res Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, res)
	}
}

// writeText prints each tree followed by its chunks, one per line.
func writeText(w io.Writer, res Result) error {
	for _, p := range res.Parses {
		if err := p.Tree.Pretty(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "Noun Phrase Chunks"); err != nil {
			return err
		}
		for _, c := range p.Chunks {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
	}
	return nil
}
