package bibtex

import (
	"strings"

	"bibread/src/internal/csl"
	"bibread/src/internal/dates"
	"bibread/src/internal/names"
	"bibread/src/internal/sanitize"
	"bibread/src/internal/stringsx"
)

var typeMap = map[string]string{
	"article":       csl.TypeArticleJournal,
	"book":          csl.TypeBook,
	"booklet":       csl.TypeBook,
	"manual":        csl.TypeBook,
	"inbook":        csl.TypeChapter,
	"incollection":  csl.TypeChapter,
	"inproceedings": csl.TypePaperConference,
	"conference":    csl.TypePaperConference,
	"proceedings":   csl.TypePaperConference,
	"phdthesis":     csl.TypeThesis,
	"mastersthesis": csl.TypeThesis,
	"thesis":        csl.TypeThesis,
	"techreport":    csl.TypeReport,
	"report":        csl.TypeReport,
	"online":        csl.TypeWebpage,
	"electronic":    csl.TypeWebpage,
	"www":           csl.TypeWebpage,
	"unpublished":   csl.TypeManuscript,
	"patent":        csl.TypePatent,
}

// ItemFromEntry maps a BibTeX entry onto a citation item keyed by the
// entry's citation key.
func ItemFromEntry(e *Entry) csl.Item {
	it := csl.Item{ID: e.Key, Type: csl.TypeArticle}
	if t, ok := typeMap[e.Type]; ok {
		it.Type = t
	}
	f := func(name string) string { return latexToText(e.Field(name)) }

	it.Title = f("title")
	it.TitleShort = f("shorttitle")
	if a := e.Field("author"); a != "" {
		it.Author = parseNames(a)
	}
	if ed := e.Field("editor"); ed != "" {
		it.Editor = parseNames(ed)
	}

	switch it.Type {
	case csl.TypeChapter, csl.TypePaperConference:
		it.ContainerTitle = stringsx.FirstNonEmpty(f("booktitle"), f("journal"))
	default:
		it.ContainerTitle = stringsx.FirstNonEmpty(f("journal"), f("journaltitle"), f("booktitle"))
	}
	it.CollectionTitle = f("series")

	switch e.Type {
	case "phdthesis":
		it.Genre = "PhD thesis"
		it.Publisher = f("school")
	case "mastersthesis":
		it.Genre = "Master's thesis"
		it.Publisher = f("school")
	case "techreport", "report":
		it.Publisher = stringsx.FirstNonEmpty(f("institution"), f("publisher"))
	default:
		it.Publisher = stringsx.FirstNonEmpty(f("publisher"), f("organization"), f("institution"), f("school"))
	}
	if it.Genre == "" {
		it.Genre = f("type")
	}
	it.PublisherPlace = stringsx.FirstNonEmpty(f("address"), f("location"))

	it.Volume = f("volume")
	if it.Type == csl.TypeArticleJournal {
		it.Issue = stringsx.FirstNonEmpty(f("number"), f("issue"))
	} else {
		it.Number = f("number")
		it.Issue = f("issue")
	}
	it.Page = normalizePages(f("pages"))
	it.NumberOfPages = f("pagetotal")
	it.Edition = f("edition")
	it.DOI = e.Field("doi")
	it.ISBN = e.Field("isbn")
	it.ISSN = e.Field("issn")
	it.URL = e.Field("url")
	it.Abstract = f("abstract")
	it.Keyword = f("keywords")
	it.Note = stringsx.FirstNonEmpty(f("note"), f("annote"))
	it.Language = f("language")

	it.Issued = issued(e)
	if p := dates.Parts(e.Field("urldate")); p != nil {
		it.Accessed = csl.NewDate(p...)
	}

	sanitize.CleanItem(&it)
	return it
}

func issued(e *Entry) *csl.Date {
	if y := dates.YearFromDate(e.Field("year")); y > 0 {
		parts := []int{y}
		if m := dates.Month(e.Field("month")); m > 0 {
			parts = append(parts, m)
		}
		return csl.NewDate(parts...)
	}
	if p := dates.Parts(e.Field("date")); p != nil {
		return csl.NewDate(p...)
	}
	if y := e.Field("year"); y != "" {
		return &csl.Date{Literal: latexToText(y)}
	}
	return nil
}

func parseNames(s string) csl.Names {
	ns := names.ParseList(s)
	for i := range ns {
		ns[i].Family = latexToText(ns[i].Family)
		ns[i].Given = latexToText(ns[i].Given)
		ns[i].Suffix = latexToText(ns[i].Suffix)
		ns[i].Literal = latexToText(ns[i].Literal)
	}
	return ns
}

// normalizePages collapses dash runs ("10--20") into a single hyphen.
func normalizePages(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		if r == '-' || r == '\u2013' || r == '\u2014' {
			if !prevDash {
				b.WriteByte('-')
			}
			prevDash = true
			continue
		}
		prevDash = false
		b.WriteRune(r)
	}
	return b.String()
}

var latexEscapes = strings.NewReplacer(
	`\&`, "&", `\%`, "%", `\$`, "$", `\#`, "#", `\_`, "_",
	`\{`, "\x00", `\}`, "\x01", `~`, " ",
)

// latexToText drops grouping braces and common escapes so field values read
// as plain text.
func latexToText(s string) string {
	if s == "" {
		return ""
	}
	s = latexEscapes.Replace(s)
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	s = strings.NewReplacer("\x00", "{", "\x01", "}").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
