package names

import (
	"strings"

	"bibread/src/internal/csl"
)

// Parse splits one personal name into CSL parts. It accepts
// "Family, Given", "Family, Suffix, Given" and "Given Names Family".
// A name wrapped in a single pair of braces ("{Acme Corp}") is kept
// verbatim as a literal, as is a single-word name.
func Parse(name string) csl.Name {
	name = strings.TrimSpace(name)
	if name == "" {
		return csl.Name{}
	}
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") && strings.Count(name, "{") == 1 {
		return csl.Name{Literal: strings.TrimSpace(name[1 : len(name)-1])}
	}
	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		switch len(parts) {
		case 2:
			return csl.Name{Family: parts[0], Given: parts[1]}
		default:
			return csl.Name{Family: parts[0], Suffix: parts[1], Given: strings.Join(parts[2:], " ")}
		}
	}
	fields := strings.Fields(name)
	if len(fields) == 1 {
		return csl.Name{Literal: fields[0]}
	}
	return csl.Name{
		Family: fields[len(fields)-1],
		Given:  strings.Join(fields[:len(fields)-1], " "),
	}
}

// ParseList splits a BibTeX-style " and " separated name list. Separators
// inside braces are not split.
func ParseList(s string) csl.Names {
	var out csl.Names
	for _, p := range splitAnd(s) {
		if n := Parse(p); !n.IsZero() {
			out = append(out, n)
		}
	}
	return out
}

func splitAnd(s string) []string {
	var parts []string
	depth, start := 0, 0
	lower := strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && isAndAt(lower, i) {
				parts = append(parts, s[start:i])
				i += len(" and")
				start = i
			}
		}
	}
	return append(parts, s[start:])
}

// isAndAt reports whether a whitespace-delimited "and" starts after s[i].
func isAndAt(s string, i int) bool {
	if !isSpace(s[i]) || i+5 > len(s) {
		return false
	}
	return s[i+1:i+4] == "and" && isSpace(s[i+4])
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
