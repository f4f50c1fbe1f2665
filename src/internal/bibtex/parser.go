// Package bibtex reads BibTeX databases and serves their entries as
// citation items.
package bibtex

import (
	"fmt"
	"io"
	"strings"
)

// Entry is one @type{key, ...} record. Field names are lowercased.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Field returns the trimmed value of a field, or "".
func (e *Entry) Field(name string) string {
	return strings.TrimSpace(e.Fields[name])
}

// Database is the parsed content of one BibTeX source.
type Database struct {
	Entries  []*Entry
	Strings  map[string]string
	Preamble []string
}

// Entry returns the entry with the given key, or nil.
func (db *Database) Entry(key string) *Entry {
	for _, e := range db.Entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// SyntaxError describes malformed BibTeX input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bibtex: line %d: %s", e.Line, e.Msg)
}

var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// Parse reads a complete BibTeX database from r. Read failures are returned
// as is; malformed content yields a *SyntaxError.
func Parse(r io.Reader) (*Database, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &parser{s: string(b), db: &Database{Strings: map[string]string{}}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.db, nil
}

type parser struct {
	s  string
	i  int
	db *Database
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: 1 + strings.Count(p.s[:min(p.i, len(p.s))], "\n"), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.i >= len(p.s) }

// skipWS skips whitespace and %-comments.
func (p *parser) skipWS() {
	for p.i < len(p.s) {
		if p.s[p.i] == '%' {
			for p.i < len(p.s) && p.s[p.i] != '\n' {
				p.i++
			}
			continue
		}
		if strings.IndexByte(" \t\r\n\f\v", p.s[p.i]) >= 0 {
			p.i++
		} else {
			break
		}
	}
}

func isIdentByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') ||
		strings.IndexByte("_-:.+/'", c) >= 0
}

func (p *parser) readIdent() string {
	start := p.i
	for p.i < len(p.s) && isIdentByte(p.s[p.i]) {
		p.i++
	}
	return p.s[start:p.i]
}

func (p *parser) parse() error {
	for {
		// Text outside of entries is a comment.
		for p.i < len(p.s) && p.s[p.i] != '@' {
			p.i++
		}
		if p.eof() {
			return nil
		}
		p.i++
		p.skipWS()
		typ := strings.ToLower(p.readIdent())
		if typ == "" {
			return p.errorf("expected entry type after '@'")
		}
		p.skipWS()
		if p.eof() || (p.s[p.i] != '{' && p.s[p.i] != '(') {
			return p.errorf("expected '{' or '(' after @%s", typ)
		}
		closer := byte('}')
		if p.s[p.i] == '(' {
			closer = ')'
		}
		p.i++
		var err error
		switch typ {
		case "comment":
			err = p.skipComment(closer)
		case "preamble":
			err = p.parsePreamble(closer)
		case "string":
			err = p.parseString(closer)
		default:
			err = p.parseEntry(typ, closer)
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) skipComment(closer byte) error {
	depth := 0
	for ; p.i < len(p.s); p.i++ {
		switch c := p.s[p.i]; {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			p.i++
			return nil
		}
	}
	return p.errorf("unterminated @comment")
}

func (p *parser) parsePreamble(closer byte) error {
	p.skipWS()
	v, err := p.readValue()
	if err != nil {
		return err
	}
	p.db.Preamble = append(p.db.Preamble, v)
	return p.expect(closer)
}

func (p *parser) parseString(closer byte) error {
	p.skipWS()
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipWS()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWS()
	v, err := p.readValue()
	if err != nil {
		return err
	}
	p.db.Strings[name] = v
	p.skipWS()
	return p.expect(closer)
}

func (p *parser) expect(c byte) error {
	p.skipWS()
	if p.eof() {
		return p.errorf("unexpected end of input, expected %q", c)
	}
	if p.s[p.i] != c {
		return p.errorf("expected %q, found %q", c, p.s[p.i])
	}
	p.i++
	return nil
}

func (p *parser) parseEntry(typ string, closer byte) error {
	p.skipWS()
	start := p.i
	for p.i < len(p.s) && p.s[p.i] != ',' && p.s[p.i] != closer {
		if p.s[p.i] == '\n' || p.s[p.i] == '=' {
			break
		}
		p.i++
	}
	key := strings.TrimSpace(p.s[start:p.i])
	if key == "" {
		return p.errorf("missing key in @%s", typ)
	}
	if p.eof() || (p.s[p.i] != ',' && p.s[p.i] != closer) {
		p.skipWS()
		if p.eof() || (p.s[p.i] != ',' && p.s[p.i] != closer) {
			return p.errorf("expected ',' after key %q", key)
		}
	}
	e := &Entry{Type: typ, Key: key, Fields: map[string]string{}}
	if p.s[p.i] == closer {
		p.i++
		p.db.Entries = append(p.db.Entries, e)
		return nil
	}
	p.i++ // comma
	for {
		p.skipWS()
		if p.eof() {
			return p.errorf("unexpected end of input in entry %q", key)
		}
		if p.s[p.i] == closer {
			p.i++
			break
		}
		name := strings.ToLower(p.readIdent())
		if name == "" {
			return p.errorf("expected field name in entry %q, found %q", key, p.s[p.i])
		}
		p.skipWS()
		if p.eof() || p.s[p.i] != '=' {
			return p.errorf("expected '=' after field %q", name)
		}
		p.i++
		p.skipWS()
		v, err := p.readValue()
		if err != nil {
			return err
		}
		e.Fields[name] = v
		p.skipWS()
		if p.eof() {
			return p.errorf("unexpected end of input in entry %q", key)
		}
		if p.s[p.i] == ',' {
			p.i++
			continue
		}
		if p.s[p.i] == closer {
			p.i++
			break
		}
		return p.errorf("expected ',' or %q after field %q", closer, name)
	}
	p.db.Entries = append(p.db.Entries, e)
	return nil
}

// readValue reads one field value: a sequence of braced, quoted, numeric or
// macro pieces joined by '#'.
func (p *parser) readValue() (string, error) {
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unexpected end of input, expected a value")
		}
		switch c := p.s[p.i]; {
		case c == '{':
			v, err := p.readDelimited('}')
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		case c == '"':
			v, err := p.readDelimited('"')
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		case '0' <= c && c <= '9':
			start := p.i
			for p.i < len(p.s) && '0' <= p.s[p.i] && p.s[p.i] <= '9' {
				p.i++
			}
			b.WriteString(p.s[start:p.i])
		default:
			name := strings.ToLower(p.readIdent())
			if name == "" {
				return "", p.errorf("expected a value, found %q", c)
			}
			v, ok := p.db.Strings[name]
			if !ok {
				v, ok = monthMacros[name]
			}
			if !ok {
				return "", p.errorf("undefined string macro %q", name)
			}
			b.WriteString(v)
		}
		p.skipWS()
		if p.eof() || p.s[p.i] != '#' {
			return normalizeSpace(b.String()), nil
		}
		p.i++
		p.skipWS()
	}
}

// readDelimited reads a {...} or "..." piece starting at the opening
// delimiter and returns its content without the outer delimiters.
func (p *parser) readDelimited(end byte) (string, error) {
	open := p.i
	p.i++
	start := p.i
	depth := 0
	for p.i < len(p.s) {
		c := p.s[p.i]
		switch {
		case c == '\\':
			p.i += 2
			continue
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == end && depth == 0:
			v := p.s[start:p.i]
			p.i++
			return v, nil
		case c == '}' && end == '"':
			p.i = open
			return "", p.errorf("unbalanced '}' in quoted value")
		}
		p.i++
	}
	p.i = open
	return "", p.errorf("unterminated value")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
