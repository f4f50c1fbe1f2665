package bibfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DetectionCap bounds how far Detect looks ahead for the first
// non-whitespace byte.
const DetectionCap = 100 * 1024

// Source is a byte stream that can be inspected without consuming it.
// Detect needs Peek(DetectionCap) to succeed; NewSource returns a Source
// that can. A *bufio.Reader with a smaller buffer fails detection with
// ErrShortLookahead when its whole buffer is whitespace.
type Source interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// NewSource returns r as a Source able to look DetectionCap bytes ahead.
func NewSource(r io.Reader) Source {
	return bufio.NewReaderSize(r, DetectionCap)
}

// Detect classifies the content of src. filename is only a hint and may be
// empty. The read position of src is left unchanged.
func Detect(src Source, filename string) (Format, error) {
	head, err := peek(src, 5)
	if err != nil {
		return Unknown, err
	}
	if len(head) == 5 {
		if head[0] == '%' && isWhitespace(head[2]) && !strings.EqualFold(extension(filename), "bib") {
			return EndNote, nil
		}
		if head[0] == 'T' && head[1] == 'Y' && isWhitespace(head[2]) && isWhitespace(head[3]) && head[4] == '-' {
			return RIS, nil
		}
	}

	buf, err := src.Peek(DetectionCap)
	full := errors.Is(err, bufio.ErrBufferFull)
	if err != nil && !full && !errors.Is(err, io.EOF) {
		return Unknown, ioFailure(err)
	}
	for _, c := range buf {
		if isWhitespace(c) {
			continue
		}
		switch c {
		case '[':
			return JSONArray, nil
		case '{':
			return JSONObject, nil
		default:
			return BibTeX, nil
		}
	}
	if full {
		return Unknown, fmt.Errorf("%w: buffered %d of %d bytes", ErrShortLookahead, len(buf), DetectionCap)
	}
	return Unknown, nil
}

// DetectFile opens path and detects its format using the base name as hint.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Unknown, notFound(path)
		}
		return Unknown, ioFailure(err)
	}
	defer f.Close()
	return Detect(NewSource(f), filepath.Base(path))
}

// peek returns up to n bytes. Short input is not an error.
func peek(src Source, n int) ([]byte, error) {
	b, err := src.Peek(n)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, ioFailure(err)
	}
	return b, nil
}

// extension returns the text after the last dot of the base name, or ""
// when the only dot leads the name.
func extension(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return ""
	}
	return base[dot+1:]
}

// isWhitespace matches ASCII whitespace plus the file, group, record and
// unit separators (0x1C-0x1F).
func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return false
}
