package bibfile

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when the named file does not exist. Errors
	// carrying it also match fs.ErrNotExist.
	ErrNotFound = errors.New("bibliography file not found")
	// ErrUnknownFormat is returned when detection cannot classify the input.
	ErrUnknownFormat = errors.New("unknown bibliography file format; specify the format explicitly")
	// ErrShortLookahead is returned by Detect when the source cannot buffer
	// DetectionCap bytes and everything it could buffer was whitespace.
	ErrShortLookahead = errors.New("source cannot look ahead the full detection window")
	// ErrMalformed matches every *ParseError.
	ErrMalformed = errors.New("malformed bibliography")
)

// ParseError reports input that the converter for Format rejected.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s input: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

func notFound(path string) error {
	return fmt.Errorf("%w: %s: %w", ErrNotFound, path, fs.ErrNotExist)
}

func ioFailure(err error) error {
	return fmt.Errorf("reading bibliography: %w", err)
}
