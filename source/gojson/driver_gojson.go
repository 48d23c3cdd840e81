// Package gojson tokenizes JSON documents with goccy/go-json. It is the
// default driver of xapiskema.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/xapiskema/internal/engine"
)

type source struct {
	dec    *j.Decoder
	frames eng.Frames
	read   *countingReader
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	cr := &countingReader{r: r}
	dec := j.NewDecoder(cr)
	dec.UseNumber()
	return &source{dec: dec, read: cr}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return s.frames.Open(eng.KindBeginObject), nil
		case '}':
			return s.frames.Close(eng.KindEndObject), nil
		case '[':
			return s.frames.Open(eng.KindBeginArray), nil
		default:
			return s.frames.Close(eng.KindEndArray), nil
		}
	case string:
		return s.frames.String(v), nil
	case bool:
		return s.frames.Scalar(eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}), nil
	case j.Number:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}), nil
	case float64:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}), nil
	default:
		return s.frames.Scalar(eng.Token{Kind: eng.KindNull, Offset: -1}), nil
	}
}

// Location reports the bytes handed to the decoder so far. go-json buffers
// ahead, so this is an upper bound of the consumed input.
func (s *source) Location() int64 { return s.read.n }

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
