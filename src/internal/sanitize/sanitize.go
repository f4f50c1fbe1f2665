package sanitize

import (
	"net/url"
	"strings"

	"bibread/src/internal/csl"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	// remove controls except \n, \t, \r
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// CleanDOI strips resolver prefixes ("https://doi.org/", "doi:") from a DOI.
func CleanDOI(s string) string {
	s = CleanString(s, 256)
	lower := strings.ToLower(s)
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

// CleanNames sanitizes name parts and drops empty names.
func CleanNames(ns csl.Names) csl.Names {
	if len(ns) == 0 {
		return nil
	}
	const max = 256
	out := make(csl.Names, 0, len(ns))
	for _, n := range ns {
		c := csl.Name{
			Family:  CleanString(n.Family, max),
			Given:   CleanString(n.Given, max),
			Suffix:  CleanString(n.Suffix, max),
			Literal: CleanString(n.Literal, max),
		}
		if c.IsZero() {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CleanItem applies conservative sanitization to the text fields of an item
// produced by a line-oriented converter. Unparseable URLs are dropped.
func CleanItem(it *csl.Item) {
	if it == nil {
		return
	}
	it.ID = CleanString(it.ID, 256)
	it.Type = CleanString(it.Type, 64)
	it.Title = CleanString(it.Title, 0)
	it.TitleShort = CleanString(it.TitleShort, 0)
	it.ContainerTitle = CleanString(it.ContainerTitle, 0)
	it.CollectionTitle = CleanString(it.CollectionTitle, 0)
	it.Publisher = CleanString(it.Publisher, 0)
	it.PublisherPlace = CleanString(it.PublisherPlace, 0)
	it.Volume = CleanString(it.Volume, 64)
	it.Issue = CleanString(it.Issue, 64)
	it.Page = CleanString(it.Page, 128)
	it.NumberOfPages = CleanString(it.NumberOfPages, 64)
	it.Edition = CleanString(it.Edition, 128)
	it.Number = CleanString(it.Number, 128)
	it.Genre = CleanString(it.Genre, 128)
	it.DOI = CleanDOI(it.DOI)
	it.ISBN = CleanString(it.ISBN, 64)
	it.ISSN = CleanString(it.ISSN, 64)
	it.URL = CleanURL(it.URL)
	it.Abstract = CleanString(it.Abstract, 0)
	it.Keyword = CleanString(it.Keyword, 0)
	it.Note = CleanString(it.Note, 0)
	it.Language = CleanString(it.Language, 64)
	it.CallNumber = CleanString(it.CallNumber, 128)
	it.Author = CleanNames(it.Author)
	it.Editor = CleanNames(it.Editor)
}
