package bibtex

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"bibread/src/internal/csl"
)

// Write renders items as BibTeX records in the given order. Items without
// an id are written under a generated key distinct from every other key.
func Write(w io.Writer, items []csl.Item) error {
	items = append([]csl.Item(nil), items...)
	csl.AssignIDs(items)
	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(renderRecord(recordFromItem(it)))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type bibRecord struct {
	typ    string
	key    string
	fields map[string]string
}

func bibTypeFor(t string) string {
	switch t {
	case csl.TypeArticleJournal, csl.TypeArticleMagazine, csl.TypeArticleNewspaper:
		return "article"
	case csl.TypeBook:
		return "book"
	case csl.TypeChapter:
		return "incollection"
	case csl.TypePaperConference:
		return "inproceedings"
	case csl.TypeThesis:
		return "phdthesis"
	case csl.TypeReport:
		return "techreport"
	case csl.TypeManuscript:
		return "unpublished"
	case csl.TypeWebpage:
		return "online"
	default:
		return "misc"
	}
}

func recordFromItem(it csl.Item) bibRecord {
	r := bibRecord{typ: bibTypeFor(it.Type), key: it.ID, fields: map[string]string{}}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			r.fields[k] = v
		}
	}
	set("author", formatNames(it.Author))
	set("editor", formatNames(it.Editor))
	set("title", it.Title)
	switch r.typ {
	case "article":
		set("journal", it.ContainerTitle)
		set("number", it.Issue)
	case "incollection", "inproceedings":
		set("booktitle", it.ContainerTitle)
		set("number", it.Number)
	case "phdthesis":
		set("school", it.Publisher)
	case "techreport":
		set("institution", it.Publisher)
		set("number", it.Number)
	default:
		set("howpublished", it.ContainerTitle)
		set("number", it.Number)
	}
	if r.typ != "phdthesis" && r.typ != "techreport" {
		set("publisher", it.Publisher)
	}
	set("series", it.CollectionTitle)
	set("address", it.PublisherPlace)
	set("volume", it.Volume)
	set("pages", strings.ReplaceAll(it.Page, "-", "--"))
	set("edition", it.Edition)
	if y := it.Year(); y > 0 {
		dp := it.Issued.DateParts[0]
		set("year", strconv.Itoa(y))
		if len(dp) > 1 && dp[1] >= 1 && dp[1] <= 12 {
			set("month", monthNames[dp[1]-1])
		}
	} else if it.Issued != nil {
		set("year", it.Issued.Literal)
	}
	set("doi", it.DOI)
	set("isbn", it.ISBN)
	set("issn", it.ISSN)
	set("url", it.URL)
	set("abstract", it.Abstract)
	set("keywords", it.Keyword)
	set("note", it.Note)
	set("language", it.Language)
	return r
}

var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func formatNames(ns csl.Names) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		fam := strings.TrimSpace(n.Family)
		giv := strings.TrimSpace(n.Given)
		switch {
		case fam == "" && giv == "":
			if lit := strings.TrimSpace(n.Literal); lit != "" {
				parts = append(parts, "{"+lit+"}")
			}
		case fam == "":
			parts = append(parts, giv)
		case giv == "":
			parts = append(parts, fam)
		case n.Suffix != "":
			parts = append(parts, fmt.Sprintf("%s, %s, %s", fam, strings.TrimSpace(n.Suffix), giv))
		default:
			parts = append(parts, fmt.Sprintf("%s, %s", fam, giv))
		}
	}
	return strings.Join(parts, " and ")
}

func renderRecord(r bibRecord) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s,\n", r.typ, r.key)
	// stable field order: names, title, container, then remaining sorted
	order := []string{"author", "editor", "title", "journal", "booktitle", "howpublished", "series", "publisher", "school", "institution", "address", "edition", "volume", "number", "pages", "year", "month", "doi", "isbn", "issn", "url"}
	seen := map[string]bool{}
	for _, k := range order {
		if v, ok := r.fields[k]; ok {
			b.WriteString(renderField(k, v))
			seen[k] = true
		}
	}
	extras := make([]string, 0, len(r.fields))
	for k := range r.fields {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		b.WriteString(renderField(k, r.fields[k]))
	}
	out := b.String()
	out = strings.TrimRight(out, "\n")
	out = strings.TrimRight(out, ",")
	out += "\n}\n\n"
	return out
}

func renderField(k, v string) string {
	switch k {
	case "month":
		return fmt.Sprintf("  %s = %s,\n", k, v)
	case "author", "editor":
		// literal names are already brace-protected
		return fmt.Sprintf("  %s = {%s},\n", k, strings.ReplaceAll(v, "\n", " "))
	}
	return fmt.Sprintf("  %s = {%s},\n", k, escapeBib(v))
}

func escapeBib(s string) string {
	// Minimal escaping; preserve LaTeX-friendly characters as-is
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	s = strings.ReplaceAll(s, "&", "\\&")
	s = strings.ReplaceAll(s, "%", "\\%")
	return strings.TrimSpace(s)
}
