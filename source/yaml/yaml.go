// Package yaml tokenizes YAML documents with gopkg.in/yaml.v3 so they flow
// through the same enforcement and tree building as JSON input.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/xapiskema/internal/engine"
)

// expansionFactor bounds the tokens a document may produce relative to its
// size, so aliases cannot expand a small input into a huge tree.
const expansionFactor = 4

var (
	// ErrAliasCycle is returned for an alias that refers to one of its own
	// enclosing nodes.
	ErrAliasCycle = errors.New("yaml: alias refers to an enclosing node")
	// ErrExpansionLimit is returned when alias expansion produces too many
	// tokens for the size of the input.
	ErrExpansionLimit = errors.New("yaml: document expands beyond the allowed size")
)

type source struct {
	toks     []eng.Token
	pos      int
	err      error
	size     int64
	limit    int
	expanded map[*yaml.Node]bool
}

// NewReader reads r fully and tokenizes the first YAML document in it.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

// NewBytes tokenizes the first YAML document in b.
func NewBytes(b []byte) eng.TokenSource {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &source{err: err}
	}
	s := &source{
		size:     int64(len(b)),
		limit:    expansionFactor*len(b) + 16,
		expanded: make(map[*yaml.Node]bool),
	}
	if len(doc.Content) == 0 {
		s.err = io.ErrUnexpectedEOF
		return s
	}
	s.err = s.walk(doc.Content[0])
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location reports the size of the whole document, which has been consumed
// before the first token is handed out.
func (s *source) Location() int64 { return s.size }

func (s *source) emit(t eng.Token) {
	t.Offset = -1
	s.toks = append(s.toks, t)
}

func (s *source) walk(n *yaml.Node) error {
	if len(s.toks) > s.limit {
		return ErrExpansionLimit
	}
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("line %d: unknown alias", n.Line)
		}
		if s.expanded[n.Alias] {
			return fmt.Errorf("line %d: %w", n.Line, ErrAliasCycle)
		}
		s.expanded[n.Alias] = true
		defer delete(s.expanded, n.Alias)
		return s.walk(n.Alias)
	case yaml.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := s.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return s.scalar(n)
	default:
		return fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
	return nil
}

func (s *source) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		s.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	default:
		s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}
