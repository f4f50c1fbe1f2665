// Package ris reads Research Information Systems (RIS) tagged files.
package ris

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Field is one tagged value.
type Field struct {
	Tag   string
	Value string
}

// Record is one TY..ER block. Fields keep their file order.
type Record struct {
	Type   string
	Fields []Field
}

// Get returns the first value of the first tag present, or "".
func (r *Record) Get(tags ...string) string {
	for _, t := range tags {
		for _, f := range r.Fields {
			if f.Tag == t && f.Value != "" {
				return f.Value
			}
		}
	}
	return ""
}

// All returns the values of every listed tag in file order.
func (r *Record) All(tags ...string) []string {
	var out []string
	for _, f := range r.Fields {
		for _, t := range tags {
			if f.Tag == t {
				out = append(out, f.Value)
				break
			}
		}
	}
	return out
}

// Library is the parsed content of one RIS file.
type Library struct {
	Records []*Record
}

// SyntaxError describes malformed RIS input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ris: line %d: %s", e.Line, e.Msg)
}

// The two separator bytes accept the same whitespace as format detection.
var tagLine = regexp.MustCompile(`^([A-Z][A-Z0-9])[\t\v\f \x1c-\x1f]{2}-(?:\s(.*))?$`)

const maxLine = 1 << 20

// Parse reads a RIS library from r. Read failures are returned as is;
// malformed content yields a *SyntaxError.
func Parse(r io.Reader) (*Library, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	lib := &Library{}
	var cur *Record
	n, opened := 0, 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		m := tagLine.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if cur == nil {
				return nil, &SyntaxError{Line: n, Msg: "text outside of a record"}
			}
			if len(cur.Fields) == 0 {
				cur.Type = strings.TrimSpace(cur.Type + " " + strings.TrimSpace(line))
				continue
			}
			last := &cur.Fields[len(cur.Fields)-1]
			last.Value = strings.TrimSpace(last.Value + " " + strings.TrimSpace(line))
			continue
		}
		tag, val := m[1], strings.TrimSpace(m[2])
		switch {
		case tag == "TY":
			if cur != nil {
				return nil, &SyntaxError{Line: n, Msg: fmt.Sprintf("TY inside record opened at line %d", opened)}
			}
			cur = &Record{Type: val}
			opened = n
		case cur == nil:
			return nil, &SyntaxError{Line: n, Msg: fmt.Sprintf("tag %s outside of a record", tag)}
		case tag == "ER":
			lib.Records = append(lib.Records, cur)
			cur = nil
		default:
			cur.Fields = append(cur.Fields, Field{Tag: tag, Value: val})
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{Line: n + 1, Msg: "line too long"}
		}
		return nil, err
	}
	if cur != nil {
		return nil, &SyntaxError{Line: opened, Msg: "record not terminated by ER"}
	}
	return lib, nil
}
