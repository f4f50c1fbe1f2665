package sanitize

import (
	"testing"
	"unicode/utf8"

	"bibread/src/internal/csl"
)

func TestCleanString(t *testing.T) {
	in := "  \tHello\x00World\n  "
	out := CleanString(in, 100)
	if out != "HelloWorld" {
		t.Fatalf("CleanString unexpected: %q", out)
	}
	if s := CleanString("abcdef", 3); s != "abc" {
		t.Fatalf("CleanString truncation: want 'abc', got %q", s)
	}
	if s := CleanString("äöüß", 2); s != "äö" {
		t.Fatalf("CleanString truncation counts runes: got %q", s)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("CleanString produced invalid utf8")
	}
}

func TestCleanURL(t *testing.T) {
	if CleanURL("") != "" {
		t.Fatalf("CleanURL empty should be empty")
	}
	if CleanURL("not a url") != "" {
		t.Fatalf("CleanURL invalid should be empty")
	}
	if CleanURL("ftp://x") != "" {
		t.Fatalf("only http/https allowed")
	}
	if got := CleanURL(" https://example.com/a "); got != "https://example.com/a" {
		t.Fatalf("CleanURL trim: %q", got)
	}
}

func TestCleanDOI(t *testing.T) {
	for in, want := range map[string]string{
		"10.1000/xyz":                 "10.1000/xyz",
		"https://doi.org/10.1000/xyz": "10.1000/xyz",
		"DOI: 10.1000/xyz":            "10.1000/xyz",
		" http://dx.doi.org/10.1/A ":  "10.1/A",
	} {
		if got := CleanDOI(in); got != want {
			t.Fatalf("CleanDOI(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestCleanItem(t *testing.T) {
	it := csl.Item{
		ID:     " id ",
		Type:   " article ",
		Title:  "  Title\x07  ",
		URL:    "javascript:alert(1)",
		DOI:    "doi:10.1/x",
		Author: csl.Names{{Family: " ", Given: " "}, {Family: "Doe", Given: "J."}},
	}
	CleanItem(&it)
	if it.ID != "id" || it.Type != "article" || it.Title != "Title" {
		t.Fatalf("CleanItem did not trim: %+v", it)
	}
	if it.URL != "" {
		t.Fatalf("CleanItem URL not dropped: %q", it.URL)
	}
	if it.DOI != "10.1/x" {
		t.Fatalf("CleanItem DOI: %q", it.DOI)
	}
	if len(it.Author) != 1 || it.Author[0].Family != "Doe" {
		t.Fatalf("CleanItem authors: %+v", it.Author)
	}
	CleanItem(nil)
}
