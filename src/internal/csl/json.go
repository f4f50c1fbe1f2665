package csl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SyntaxError reports CSL-JSON input that could not be turned into items.
type SyntaxError struct {
	Offset int64 // byte offset of the problem, -1 if unknown
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("csl json: offset %d: %s", e.Offset, e.Msg)
	}
	return "csl json: " + e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ReadArray decodes a JSON array of CSL item objects. Element order is kept.
func ReadArray(r io.Reader) ([]Item, error) {
	dec := json.NewDecoder(r)
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, decodeError(err, "expected an array of items")
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(raw))
	for i, el := range raw {
		it, err := decodeItem(el)
		if err != nil {
			return nil, &SyntaxError{Offset: -1, Msg: fmt.Sprintf("element %d: %v", i, err), Err: err}
		}
		items = append(items, it)
	}
	return items, nil
}

// ReadObject decodes exactly one CSL item object.
func ReadObject(r io.Reader) (Item, error) {
	dec := json.NewDecoder(r)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return Item{}, decodeError(err, "expected an item object")
	}
	if err := expectEOF(dec); err != nil {
		return Item{}, err
	}
	it, err := decodeItem(raw)
	if err != nil {
		return Item{}, &SyntaxError{Offset: -1, Msg: err.Error(), Err: err}
	}
	return it, nil
}

var errNotObject = errors.New("not a JSON object")

func decodeItem(raw json.RawMessage) (Item, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Item{}, errNotObject
	}
	var it Item
	if err := json.Unmarshal(raw, &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// expectEOF fails when anything but whitespace follows the top-level value.
func expectEOF(dec *json.Decoder) error {
	_, err := dec.Token()
	if err == io.EOF {
		return nil
	}
	if err == nil {
		return &SyntaxError{Offset: dec.InputOffset(), Msg: "unexpected data after top-level value"}
	}
	return decodeError(err, "unexpected data after top-level value")
}

// decodeError turns decoder failures caused by the input's content into
// *SyntaxError. Anything else came from the underlying reader and is
// returned unchanged.
func decodeError(err error, what string) error {
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &se):
		return &SyntaxError{Offset: se.Offset, Msg: se.Error(), Err: err}
	case errors.As(err, &te):
		return &SyntaxError{Offset: te.Offset, Msg: what, Err: err}
	case errors.Is(err, io.EOF):
		return &SyntaxError{Offset: 0, Msg: "empty input: " + what, Err: err}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &SyntaxError{Offset: -1, Msg: "unexpected end of input", Err: err}
	}
	return err
}
