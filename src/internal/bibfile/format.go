// Package bibfile turns bibliography files of any supported format into a
// csl.ItemDataProvider. It sniffs the format from the leading bytes of the
// input and dispatches to the matching converter.
package bibfile

import (
	"fmt"
	"strings"
)

// Format identifies a bibliography file format.
type Format int

const (
	Unknown Format = iota
	BibTeX
	JSONObject
	JSONArray
	EndNote
	RIS
)

var formatNames = [...]string{
	Unknown:    "unknown",
	BibTeX:     "bibtex",
	JSONObject: "json-object",
	JSONArray:  "json-array",
	EndNote:    "endnote",
	RIS:        "ris",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Formats lists every concrete format in declaration order.
func Formats() []Format {
	return []Format{BibTeX, JSONObject, JSONArray, EndNote, RIS}
}

// ParseFormat resolves a format name. "auto" and "" map to Unknown, which
// callers treat as "detect from content".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "unknown":
		return Unknown, nil
	case "bibtex", "bib":
		return BibTeX, nil
	case "json-object":
		return JSONObject, nil
	case "json-array", "json":
		return JSONArray, nil
	case "endnote", "enw":
		return EndNote, nil
	case "ris":
		return RIS, nil
	}
	return Unknown, fmt.Errorf("unsupported format %q", s)
}
