package bibfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bibread/src/internal/bibtex"
	"bibread/src/internal/csl"
	"bibread/src/internal/endnote"
	"bibread/src/internal/ris"
)

// Reader builds item data providers from bibliography input.
// A Reader holds no per-call state and may be shared.
type Reader struct {
	log *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ReadFile reads the file at path, detecting its format from its content
// and name.
func (r *Reader) ReadFile(path string) (csl.ItemDataProvider, error) {
	return r.readFile(path, func(f io.Reader) (csl.ItemDataProvider, error) {
		return r.Read(f, filepath.Base(path))
	})
}

// ReadFileFormat reads the file at path as format f. Unknown falls back to
// detection.
func (r *Reader) ReadFileFormat(path string, f Format) (csl.ItemDataProvider, error) {
	if f == Unknown {
		return r.ReadFile(path)
	}
	return r.readFile(path, func(in io.Reader) (csl.ItemDataProvider, error) {
		return r.ReadFormat(in, f)
	})
}

func (r *Reader) readFile(path string, read func(io.Reader) (csl.ItemDataProvider, error)) (csl.ItemDataProvider, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, ioFailure(err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, ioFailure(err)
	}
	defer f.Close()
	r.log.Debug("opened bibliography", zap.String("path", path))
	return read(NewSource(f))
}

// Read detects the format of in and converts it. filename is an optional
// hint. in is never closed.
func (r *Reader) Read(in io.Reader, filename string) (csl.ItemDataProvider, error) {
	src := NewSource(in)
	f, err := Detect(src, filename)
	if err != nil {
		return nil, err
	}
	r.log.Debug("detected format", zap.String("filename", filename), zap.Stringer("format", f))
	return r.ReadFormat(src, f)
}

// ReadFormat converts in as format f without detection.
func (r *Reader) ReadFormat(in io.Reader, f Format) (csl.ItemDataProvider, error) {
	var (
		p   csl.ItemDataProvider
		n   int
		err error
	)
	switch f {
	case Unknown:
		return nil, ErrUnknownFormat
	case BibTeX:
		var db *bibtex.Database
		if db, err = bibtex.Parse(in); err == nil {
			bp := bibtex.NewProvider()
			bp.AddDatabase(db)
			p, n = bp, bp.Len()
		}
	case JSONArray:
		var items []csl.Item
		if items, err = csl.ReadArray(in); err == nil {
			csl.AssignIDs(items)
			lp := csl.NewListProvider(items...)
			p, n = lp, lp.Len()
		}
	case JSONObject:
		var it csl.Item
		if it, err = csl.ReadObject(in); err == nil {
			items := []csl.Item{it}
			csl.AssignIDs(items)
			p, n = csl.NewListProvider(items...), 1
		}
	case EndNote:
		var lib *endnote.Library
		if lib, err = endnote.Parse(in); err == nil {
			ep := endnote.NewProvider()
			ep.AddLibrary(lib)
			p, n = ep, ep.Len()
		}
	case RIS:
		var lib *ris.Library
		if lib, err = ris.Parse(in); err == nil {
			rp := ris.NewProvider()
			rp.AddLibrary(lib)
			p, n = rp, rp.Len()
		}
	default:
		return nil, fmt.Errorf("unsupported format %v", f)
	}
	if err != nil {
		return nil, classify(f, err)
	}
	r.log.Debug("built provider", zap.Stringer("format", f), zap.Int("items", n))
	return p, nil
}

// classify separates rejected content from failures of the underlying reader.
func classify(f Format, err error) error {
	var (
		bibErr  *bibtex.SyntaxError
		endErr  *endnote.SyntaxError
		risErr  *ris.SyntaxError
		jsonErr *csl.SyntaxError
	)
	switch {
	case errors.As(err, &bibErr), errors.As(err, &endErr), errors.As(err, &risErr), errors.As(err, &jsonErr):
		return &ParseError{Format: f, Err: err}
	}
	return ioFailure(err)
}

var std = NewReader()

// ReadFile reads path with a default Reader.
func ReadFile(path string) (csl.ItemDataProvider, error) { return std.ReadFile(path) }

// Read converts in with a default Reader.
func Read(in io.Reader, filename string) (csl.ItemDataProvider, error) {
	return std.Read(in, filename)
}

// ReadFormat converts in as f with a default Reader.
func ReadFormat(in io.Reader, f Format) (csl.ItemDataProvider, error) {
	return std.ReadFormat(in, f)
}
