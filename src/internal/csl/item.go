// Package csl holds the format-agnostic citation item model shared by every
// bibliography converter, plus the CSL-JSON reader.
package csl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Item types used by the converters. Names follow the CSL vocabulary.
const (
	TypeArticle          = "article"
	TypeArticleJournal   = "article-journal"
	TypeArticleMagazine  = "article-magazine"
	TypeArticleNewspaper = "article-newspaper"
	TypeBook             = "book"
	TypeChapter          = "chapter"
	TypeManuscript       = "manuscript"
	TypePaperConference  = "paper-conference"
	TypePatent           = "patent"
	TypeReport           = "report"
	TypeThesis           = "thesis"
	TypeWebpage          = "webpage"
)

// Item is one bibliographic entry in CSL-JSON shape.
type Item struct {
	ID              string `json:"id" yaml:"id"`
	Type            string `json:"type" yaml:"type"`
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	TitleShort      string `json:"title-short,omitempty" yaml:"title-short,omitempty"`
	Author          Names  `json:"author,omitempty" yaml:"author,omitempty"`
	Editor          Names  `json:"editor,omitempty" yaml:"editor,omitempty"`
	Issued          *Date  `json:"issued,omitempty" yaml:"issued,omitempty"`
	Accessed        *Date  `json:"accessed,omitempty" yaml:"accessed,omitempty"`
	ContainerTitle  string `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	CollectionTitle string `json:"collection-title,omitempty" yaml:"collection-title,omitempty"`
	Publisher       string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublisherPlace  string `json:"publisher-place,omitempty" yaml:"publisher-place,omitempty"`
	Volume          string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue           string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Page            string `json:"page,omitempty" yaml:"page,omitempty"`
	NumberOfPages   string `json:"number-of-pages,omitempty" yaml:"number-of-pages,omitempty"`
	Edition         string `json:"edition,omitempty" yaml:"edition,omitempty"`
	Number          string `json:"number,omitempty" yaml:"number,omitempty"`
	Genre           string `json:"genre,omitempty" yaml:"genre,omitempty"`
	DOI             string `json:"DOI,omitempty" yaml:"DOI,omitempty"`
	ISBN            string `json:"ISBN,omitempty" yaml:"ISBN,omitempty"`
	ISSN            string `json:"ISSN,omitempty" yaml:"ISSN,omitempty"`
	URL             string `json:"URL,omitempty" yaml:"URL,omitempty"`
	Abstract        string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keyword         string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Note            string `json:"note,omitempty" yaml:"note,omitempty"`
	Language        string `json:"language,omitempty" yaml:"language,omitempty"`
	CallNumber      string `json:"call-number,omitempty" yaml:"call-number,omitempty"`
}

// UnmarshalJSON accepts ids given as JSON strings or numbers.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(it)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := flexString(aux.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	it.ID = id
	return nil
}

// Year returns the first date-part of Issued, or 0.
func (it Item) Year() int {
	if it.Issued == nil || len(it.Issued.DateParts) == 0 || len(it.Issued.DateParts[0]) == 0 {
		return 0
	}
	return it.Issued.DateParts[0][0]
}

// Name is a CSL name variable.
type Name struct {
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Suffix  string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// IsZero reports whether no part of the name is set.
func (n Name) IsZero() bool {
	return strings.TrimSpace(n.Family) == "" && strings.TrimSpace(n.Given) == "" &&
		strings.TrimSpace(n.Literal) == ""
}

// Names is a list of names that can unmarshal from several JSON shapes:
// - an array of name objects or plain strings
// - a single name object
// - a single string (stored as Literal)
type Names []Name

func (ns *Names) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ns = nil
		return nil
	}
	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		var out Names
		for _, r := range raw {
			n, err := decodeName(r)
			if err != nil {
				return err
			}
			if n.IsZero() {
				continue
			}
			out = append(out, n)
		}
		*ns = out
		return nil
	default:
		n, err := decodeName(data)
		if err != nil {
			return err
		}
		if n.IsZero() {
			*ns = nil
			return nil
		}
		*ns = Names{n}
		return nil
	}
}

func decodeName(data json.RawMessage) (Name, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Name{}, err
		}
		return Name{Literal: strings.TrimSpace(s)}, nil
	}
	var n Name
	if err := json.Unmarshal(data, &n); err != nil {
		return Name{}, err
	}
	return n, nil
}

// Date is a CSL date variable. Raw holds an unparsed date string when the
// source gave nothing more structured.
type Date struct {
	DateParts [][]int `json:"date-parts,omitempty" yaml:"date-parts,omitempty,flow"`
	Literal   string  `json:"literal,omitempty" yaml:"literal,omitempty"`
	Raw       string  `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// NewDate returns a date with a single date-part list, or nil when parts is empty.
func NewDate(parts ...int) *Date {
	if len(parts) == 0 {
		return nil
	}
	return &Date{DateParts: [][]int{parts}}
}

// UnmarshalJSON tolerates date-parts given as numeric strings ("2020").
func (d *Date) UnmarshalJSON(data []byte) error {
	var aux struct {
		DateParts [][]json.RawMessage `json:"date-parts"`
		Literal   string              `json:"literal"`
		Raw       string              `json:"raw"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Literal = aux.Literal
	d.Raw = aux.Raw
	d.DateParts = nil
	for _, dp := range aux.DateParts {
		parts := make([]int, 0, len(dp))
		for _, p := range dp {
			s, err := flexString(p)
			if err != nil {
				return fmt.Errorf("date-parts: %w", err)
			}
			if s == "" {
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("date-parts: %q is not a number", s)
			}
			parts = append(parts, v)
		}
		if len(parts) > 0 {
			d.DateParts = append(d.DateParts, parts)
		}
	}
	return nil
}

// flexString decodes a JSON string or number into its text form.
func flexString(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("cannot use %s as a string", string(data))
}
