// Package json tokenizes JSON documents with encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/xapiskema/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	frames     eng.Frames
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	t := s.token(tok)
	t.Offset = s.lastOffset
	return t, nil
}

func (s *jsonSource) token(tok json.Token) eng.Token {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return s.frames.Open(eng.KindBeginObject)
		case '}':
			return s.frames.Close(eng.KindEndObject)
		case '[':
			return s.frames.Open(eng.KindBeginArray)
		default:
			return s.frames.Close(eng.KindEndArray)
		}
	case string:
		return s.frames.String(v)
	case bool:
		return s.frames.Scalar(eng.Token{Kind: eng.KindBool, Bool: v})
	case json.Number:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNumber, Number: string(v)})
	case float64:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)})
	default:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNull})
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
