// Package endnote reads EndNote (refer-style) tagged bibliography files.
//
// A record is a run of lines of the form "%X value" where X is a single
// tag character. Blank lines separate records and lines that do not start
// with '%' continue the value of the previous tag:
//
//	%0 Journal Article
//	%A Doe, Jane
//	%T An Example
//	%D 2020
package endnote

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Field is one tagged value of a record.
type Field struct {
	Tag   byte
	Value string
}

// Record is one reference. Fields keep their file order; tags may repeat.
type Record struct {
	Fields []Field
}

// Get returns the first value for tag, or "".
func (r *Record) Get(tag byte) string {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}

// All returns every value for tag in order.
func (r *Record) All(tag byte) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// Library is the parsed content of one EndNote file.
type Library struct {
	Records []*Record
}

// SyntaxError describes malformed EndNote input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("endnote: line %d: %s", e.Line, e.Msg)
}

const maxLine = 1 << 20

// Parse reads an EndNote library from r. Read failures are returned as is;
// malformed content yields a *SyntaxError.
func Parse(r io.Reader) (*Library, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	lib := &Library{}
	var cur *Record
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			cur = nil
			continue
		}
		if line[0] != '%' {
			if cur == nil {
				return nil, &SyntaxError{Line: n, Msg: "text outside of a record"}
			}
			last := &cur.Fields[len(cur.Fields)-1]
			last.Value = strings.TrimSpace(last.Value + " " + strings.TrimSpace(line))
			continue
		}
		if len(line) < 2 || line[1] == ' ' || line[1] == '\t' {
			return nil, &SyntaxError{Line: n, Msg: "missing tag after '%'"}
		}
		if len(line) > 2 && line[2] != ' ' && line[2] != '\t' {
			return nil, &SyntaxError{Line: n, Msg: fmt.Sprintf("expected whitespace after tag %%%c", line[1])}
		}
		if cur == nil {
			cur = &Record{}
			lib.Records = append(lib.Records, cur)
		}
		cur.Fields = append(cur.Fields, Field{Tag: line[1], Value: strings.TrimSpace(line[2:])})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{Line: n + 1, Msg: "line too long"}
		}
		return nil, err
	}
	return lib, nil
}
