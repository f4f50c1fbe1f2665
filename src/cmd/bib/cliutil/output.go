package cliutil

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"bibread/src/internal/bibtex"
	"bibread/src/internal/config"
	"bibread/src/internal/csl"
)

// WriteItems renders items as a CSL-JSON array, a YAML sequence or BibTeX.
func WriteItems(w io.Writer, output string, items []csl.Item) error {
	if items == nil {
		items = []csl.Item{}
	}
	switch output {
	case config.OutputJSON:
		return writeJSON(w, items)
	case config.OutputYAML:
		return writeYAML(w, items)
	case config.OutputBibTeX:
		return bibtex.Write(w, items)
	}
	return fmt.Errorf("unsupported output %q", output)
}

// WriteItem renders a single item. JSON and YAML emit a bare object rather
// than a one-element list.
func WriteItem(w io.Writer, output string, it csl.Item) error {
	switch output {
	case config.OutputJSON:
		return writeJSON(w, it)
	case config.OutputYAML:
		return writeYAML(w, it)
	}
	return WriteItems(w, output, []csl.Item{it})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
