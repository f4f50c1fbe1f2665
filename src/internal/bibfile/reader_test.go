package bibfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bibread/src/internal/bibtex"
	"bibread/src/internal/csl"
	"bibread/src/internal/endnote"
	"bibread/src/internal/ris"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestExtensionOverride(t *testing.T) {
	const in = "%A Doe, Jane\n%T Title\n%D 2020\n"
	tests := []struct {
		filename string
		want     Format
	}{
		{"x.bib", BibTeX},
		{"x.enw", EndNote},
		{"", EndNote},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			f, err := Detect(NewSource(strings.NewReader(in)), tc.filename)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestReadJSONObject(t *testing.T) {
	p, err := Read(strings.NewReader(`{"id": "solo", "type": "book", "title": "Alone"}`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, p.IDs())
	it, ok := p.RetrieveItem("solo")
	require.True(t, ok)
	assert.Equal(t, "Alone", it.Title)
}

func TestReadJSONArrayKeepsOrder(t *testing.T) {
	in := `[
  {"id": "c", "type": "book"},
  {"id": "a", "type": "book"},
  {"id": 7, "type": "book"},
  {"id": "b", "type": "book"}
]`
	p, err := Read(strings.NewReader(in), "items.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "7", "b"}, p.IDs())
}

func TestReadJSONGeneratesMissingIDs(t *testing.T) {
	p, err := Read(strings.NewReader(`[{"title": "A"}, {"title": "B"}, {"id": "ba", "title": "C"}, {"title": "B"}]`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "ba", "bb"}, p.IDs())

	p, err = Read(strings.NewReader(`{"title": "Untitled Work"}`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"untitled"}, p.IDs())
}

func TestReadRISWithTabSeparators(t *testing.T) {
	p, err := Read(strings.NewReader("TY\t\t- JOUR\nTI\t\t- x\nER\t\t-\n"), "")
	require.NoError(t, err)
	ids := p.IDs()
	require.Len(t, ids, 1)
	it, ok := p.RetrieveItem(ids[0])
	require.True(t, ok)
	assert.Equal(t, "x", it.Title)
}

func TestReadEndNoteAndRIS(t *testing.T) {
	p, err := Read(strings.NewReader("%0 Book\n%F en1\n%T EndNote Book\n"), "x.enw")
	require.NoError(t, err)
	assert.IsType(t, &endnote.Provider{}, p)
	assert.Equal(t, []string{"en1"}, p.IDs())

	p, err = Read(strings.NewReader("TY  - BOOK\nID  - ris1\nTI  - RIS Book\nER  -\n"), "")
	require.NoError(t, err)
	assert.IsType(t, &ris.Provider{}, p)
	it, ok := p.RetrieveItem("ris1")
	require.True(t, ok)
	assert.Equal(t, csl.TypeBook, it.Type)
}

func TestReadBibTeXMerge(t *testing.T) {
	first, err := bibtex.Parse(strings.NewReader(`@book{a, title={A}} @book{shared, title={Old}}`))
	require.NoError(t, err)
	second, err := bibtex.Parse(strings.NewReader(`@book{shared, title={New}} @book{b, title={B}}`))
	require.NoError(t, err)

	p := bibtex.NewProvider()
	p.AddDatabase(first)
	p.AddDatabase(second)
	for _, id := range []string{"a", "b", "shared"} {
		_, ok := p.RetrieveItem(id)
		assert.True(t, ok, id)
	}
	it, _ := p.RetrieveItem("shared")
	assert.Equal(t, "New", it.Title)
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(" \n\t "), "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestReadInvalidBibTeX(t *testing.T) {
	const in = "@article{broken, title = {unterminated\n"
	f, err := Detect(NewSource(strings.NewReader(in)), "")
	require.NoError(t, err)
	require.Equal(t, BibTeX, f)

	_, err = Read(strings.NewReader(in), "")
	require.ErrorIs(t, err, ErrMalformed)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, BibTeX, pe.Format)
	var se *bibtex.SyntaxError
	assert.True(t, errors.As(err, &se))
}

func TestReadMalformedInputs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		f    Format
	}{
		{"json array with scalar", `[{"id": "a"}, 3]`, JSONArray},
		{"json array truncated", `[{"id": "a"}`, JSONArray},
		{"json object with trailing data", `{"id": "a"} {"id": "b"}`, JSONObject},
		{"endnote tag without space", "%0 Book\n%Tx\n", EndNote},
		{"ris missing ER", "TY  - JOUR\nTI  - x\n", RIS},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.in), "")
			require.ErrorIs(t, err, ErrMalformed)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.f, pe.Format)
		})
	}
}

func TestReadFormatForcesConverter(t *testing.T) {
	_, err := ReadFormat(strings.NewReader("{}"), Unknown)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	p, err := ReadFormat(strings.NewReader(`[{"id": "x"}]`), JSONArray)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, p.IDs())

	_, err = ReadFormat(strings.NewReader(`[{"id": "x"}]`), JSONObject)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bib"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestReadFile(t *testing.T) {
	p, err := ReadFile(writeFile(t, "refs.bib", "%% comment\n@book{knuth1984, title={Literate Programming}, year=1984}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"knuth1984"}, p.IDs())

	p, err = NewReader().ReadFileFormat(writeFile(t, "refs.txt", "[]"), JSONArray)
	require.NoError(t, err)
	assert.Empty(t, p.IDs())
}

func TestReadIOFailure(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := ReadFormat(failingReader{boom}, BibTeX)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestReaderLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewReader(WithLogger(zap.New(core)))
	_, err := r.Read(strings.NewReader(`[{"id": "a"}, {"id": "b"}]`), "")
	require.NoError(t, err)

	built := logs.FilterMessage("built provider").All()
	require.Len(t, built, 1)
	assert.Equal(t, int64(2), built[0].ContextMap()["items"])
	assert.Equal(t, "json-array", built[0].ContextMap()["format"])
	for _, e := range logs.All() {
		assert.Equal(t, zap.DebugLevel, e.Level)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, f := range append(Formats(), Unknown) {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	for in, want := range map[string]Format{"BIB": BibTeX, "json": JSONArray, "enw": EndNote, "auto": Unknown, "": Unknown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
	assert.Equal(t, "Format(42)", Format(42).String())
}
