package endnote

import (
	"strings"

	"bibread/src/internal/csl"
	"bibread/src/internal/dates"
	"bibread/src/internal/names"
	"bibread/src/internal/sanitize"
	"bibread/src/internal/stringsx"
)

var typeMap = map[string]string{
	"journal article":         csl.TypeArticleJournal,
	"electronic article":      csl.TypeArticleJournal,
	"magazine article":        csl.TypeArticleMagazine,
	"newspaper article":       csl.TypeArticleNewspaper,
	"book":                    csl.TypeBook,
	"edited book":             csl.TypeBook,
	"electronic book":         csl.TypeBook,
	"book section":            csl.TypeChapter,
	"electronic book section": csl.TypeChapter,
	"conference paper":        csl.TypePaperConference,
	"conference proceedings":  csl.TypePaperConference,
	"thesis":                  csl.TypeThesis,
	"report":                  csl.TypeReport,
	"government document":     csl.TypeReport,
	"web page":                csl.TypeWebpage,
	"manuscript":              csl.TypeManuscript,
	"unpublished work":        csl.TypeManuscript,
	"patent":                  csl.TypePatent,
}

// Items converts every record of lib. Records without a label (%F) or
// accession number (%M) get a generated key that no other record of lib
// carries.
func Items(lib *Library) []csl.Item {
	out := make([]csl.Item, 0, len(lib.Records))
	for _, r := range lib.Records {
		out = append(out, ItemFromRecord(r))
	}
	csl.AssignIDs(out)
	return out
}

// ItemFromRecord maps one record onto a citation item. The id is left empty
// when the record carries neither %F nor %M.
func ItemFromRecord(r *Record) csl.Item {
	it := csl.Item{Type: csl.TypeArticle}
	if t, ok := typeMap[strings.ToLower(r.Get('0'))]; ok {
		it.Type = t
	}
	it.ID = stringsx.FirstNonEmpty(r.Get('F'), r.Get('M'))
	it.Title = r.Get('T')
	for _, a := range r.All('A') {
		it.Author = append(it.Author, names.Parse(a))
	}
	for _, e := range r.All('E') {
		it.Editor = append(it.Editor, names.Parse(e))
	}

	switch it.Type {
	case csl.TypeChapter, csl.TypePaperConference:
		it.ContainerTitle = stringsx.FirstNonEmpty(r.Get('B'), r.Get('J'))
	default:
		it.ContainerTitle = stringsx.FirstNonEmpty(r.Get('J'), r.Get('B'))
	}
	it.CollectionTitle = r.Get('S')
	it.Publisher = r.Get('I')
	it.PublisherPlace = r.Get('C')
	it.Volume = r.Get('V')
	it.Issue = r.Get('N')
	it.Page = r.Get('P')
	it.Edition = r.Get('7')
	it.Genre = r.Get('9')
	if sn := r.Get('@'); sn != "" {
		if it.Type == csl.TypeBook || it.Type == csl.TypeChapter {
			it.ISBN = sn
		} else {
			it.ISSN = sn
		}
	}
	it.DOI = r.Get('R')
	it.URL = r.Get('U')
	it.Abstract = r.Get('X')
	it.Keyword = stringsx.JoinNonEmpty(", ", r.All('K')...)
	it.Note = stringsx.JoinNonEmpty("; ", append(r.All('Z'), r.All('O')...)...)
	it.Language = r.Get('G')
	it.CallNumber = r.Get('L')
	it.Issued = issued(r.Get('D'), r.Get('8'))

	sanitize.CleanItem(&it)
	return it
}

// issued combines %D (year) with %8 (full date) when they agree.
func issued(year, date string) *csl.Date {
	yp := dates.Parts(year)
	dp := dates.Parts(date)
	switch {
	case dp != nil && (yp == nil || yp[0] == dp[0]):
		return csl.NewDate(dp...)
	case yp != nil:
		return csl.NewDate(yp...)
	case strings.TrimSpace(year) != "":
		return &csl.Date{Literal: strings.TrimSpace(year)}
	}
	return nil
}
