package endnote

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibread/src/internal/csl"
)

const sample = `%0 Journal Article
%A Knuth, Donald E.
%T Literate Programming
%J The Computer Journal
%V 27
%N 2
%P 97-111
%D 1984
%8 1984-05
%F knuth1984

%0 Book Section
%A Lamport, Leslie
%E Doe, Jane
%T Time, Clocks, and the Ordering
  of Events
%B Collected Papers
%I ACM Press
%C New York
%D 1978
%@ 978-0-00-000000-0
%K clocks
%K ordering
`

func TestParseLibrary(t *testing.T) {
	lib, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, lib.Records, 2)

	first := lib.Records[0]
	assert.Equal(t, "Journal Article", first.Get('0'))
	assert.Equal(t, "knuth1984", first.Get('F'))
	assert.Equal(t, "", first.Get('Z'))

	second := lib.Records[1]
	assert.Equal(t, "Time, Clocks, and the Ordering of Events", second.Get('T'))
	assert.Equal(t, []string{"clocks", "ordering"}, second.All('K'))
}

func TestParseCRLFAndBOM(t *testing.T) {
	in := "\ufeff%0 Book\r\n%T Crlf\r\n\r\n\r\n%0 Report\r\n%T Second\r\n"
	lib, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, lib.Records, 2)
	assert.Equal(t, "Crlf", lib.Records[0].Get('T'))
	assert.Equal(t, "Report", lib.Records[1].Get('0'))
}

func TestParseEmpty(t *testing.T) {
	lib, err := Parse(strings.NewReader("\n\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, lib.Records)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"text before first tag", "hello\n%T x\n", 1},
		{"continuation after blank line", "%T x\n\nstray\n", 3},
		{"percent without tag", "%T x\n%\n", 2},
		{"space instead of tag", "%0 Book\n% T x\n", 2},
		{"tag not followed by space", "%0 Book\n%Tx\n", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tc.line, se.Line)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReadErrorIsNotSyntaxError(t *testing.T) {
	_, err := Parse(failingReader{})
	require.Error(t, err)
	var se *SyntaxError
	assert.False(t, errors.As(err, &se))
}

func TestItemFromRecord(t *testing.T) {
	lib, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	got := ItemFromRecord(lib.Records[0])
	want := csl.Item{
		ID:             "knuth1984",
		Type:           csl.TypeArticleJournal,
		Title:          "Literate Programming",
		Author:         csl.Names{{Family: "Knuth", Given: "Donald E."}},
		Issued:         csl.NewDate(1984, 5),
		ContainerTitle: "The Computer Journal",
		Volume:         "27",
		Issue:          "2",
		Page:           "97-111",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("item mismatch (-want +got):\n%s", diff)
	}

	chap := ItemFromRecord(lib.Records[1])
	assert.Equal(t, csl.TypeChapter, chap.Type)
	assert.Equal(t, "", chap.ID)
	assert.Equal(t, "Collected Papers", chap.ContainerTitle)
	assert.Equal(t, "978-0-00-000000-0", chap.ISBN)
	assert.Equal(t, "clocks, ordering", chap.Keyword)
	assert.Equal(t, csl.Names{{Family: "Doe", Given: "Jane"}}, chap.Editor)
	assert.Equal(t, 1978, chap.Year())
}

func TestItemFromRecordUnknownTypeAndAccession(t *testing.T) {
	lib, err := Parse(strings.NewReader("%0 Hieroglyph\n%M WOS:123\n%D Spring\n"))
	require.NoError(t, err)
	it := ItemFromRecord(lib.Records[0])
	assert.Equal(t, csl.TypeArticle, it.Type)
	assert.Equal(t, "WOS:123", it.ID)
	require.NotNil(t, it.Issued)
	assert.Equal(t, "Spring", it.Issued.Literal)
}
