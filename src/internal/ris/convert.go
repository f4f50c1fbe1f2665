package ris

import (
	"strings"

	"bibread/src/internal/csl"
	"bibread/src/internal/dates"
	"bibread/src/internal/names"
	"bibread/src/internal/sanitize"
	"bibread/src/internal/stringsx"
)

var typeMap = map[string]string{
	"JOUR":    csl.TypeArticleJournal,
	"JFULL":   csl.TypeArticleJournal,
	"EJOUR":   csl.TypeArticleJournal,
	"BOOK":    csl.TypeBook,
	"EBOOK":   csl.TypeBook,
	"EDBOOK":  csl.TypeBook,
	"CHAP":    csl.TypeChapter,
	"ECHAP":   csl.TypeChapter,
	"CONF":    csl.TypePaperConference,
	"CPAPER":  csl.TypePaperConference,
	"THES":    csl.TypeThesis,
	"RPRT":    csl.TypeReport,
	"ELEC":    csl.TypeWebpage,
	"WEB":     csl.TypeWebpage,
	"NEWS":    csl.TypeArticleNewspaper,
	"MGZN":    csl.TypeArticleMagazine,
	"PAT":     csl.TypePatent,
	"UNPB":    csl.TypeManuscript,
	"MANSCPT": csl.TypeManuscript,
}

// Items converts every record of lib, generating keys for records without ID.
func Items(lib *Library) []csl.Item {
	out := make([]csl.Item, 0, len(lib.Records))
	for _, r := range lib.Records {
		out = append(out, ItemFromRecord(r))
	}
	csl.AssignIDs(out)
	return out
}

// ItemFromRecord maps one record onto a citation item.
func ItemFromRecord(r *Record) csl.Item {
	it := csl.Item{Type: csl.TypeArticle}
	if t, ok := typeMap[strings.ToUpper(strings.TrimSpace(r.Type))]; ok {
		it.Type = t
	}
	it.ID = r.Get("ID")
	it.Title = r.Get("TI", "T1")
	for _, a := range r.All("AU", "A1") {
		it.Author = append(it.Author, names.Parse(a))
	}
	for _, e := range r.All("A2", "ED") {
		it.Editor = append(it.Editor, names.Parse(e))
	}
	it.ContainerTitle = r.Get("T2", "JO", "JF", "JA", "BT")
	it.CollectionTitle = r.Get("T3")
	it.Publisher = r.Get("PB")
	it.PublisherPlace = r.Get("CY")
	it.Volume = r.Get("VL")
	it.Issue = r.Get("IS")
	it.Page = pages(r.Get("SP"), r.Get("EP"))
	it.Edition = r.Get("ET")
	if sn := r.Get("SN"); sn != "" {
		if it.Type == csl.TypeBook || it.Type == csl.TypeChapter {
			it.ISBN = sn
		} else {
			it.ISSN = sn
		}
	}
	it.DOI = r.Get("DO")
	it.URL = r.Get("UR")
	it.Abstract = r.Get("AB", "N2")
	it.Keyword = stringsx.JoinNonEmpty(", ", r.All("KW")...)
	it.Note = stringsx.JoinNonEmpty("; ", r.All("N1")...)
	it.Language = r.Get("LA")
	it.CallNumber = r.Get("CN")
	if d := r.Get("DA", "PY", "Y1"); d != "" {
		if p := dates.Parts(d); p != nil {
			it.Issued = csl.NewDate(p...)
		} else {
			it.Issued = &csl.Date{Literal: d}
		}
	}

	sanitize.CleanItem(&it)
	return it
}

func pages(sp, ep string) string {
	sp, ep = strings.TrimSpace(sp), strings.TrimSpace(ep)
	switch {
	case sp == "":
		return ep
	case ep == "" || ep == sp:
		return sp
	}
	return sp + "-" + ep
}
