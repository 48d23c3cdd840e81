// Package normalizer converts xAPI statements between typed model values and
// raw documents. A Serializer owns one converter per Kind and is itself the
// AttributeConverter the converters delegate nested fields through.
package normalizer

import (
	"context"
	"fmt"
	"maps"
	"slices"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

// Serializer dispatches conversions to the converter registered for a kind.
// It holds no mutable state once built and is safe for concurrent use.
type Serializer struct {
	converters map[xapiskema.Kind]xapiskema.Converter
	readOpt    xapiskema.ReadOpt
}

var _ xapiskema.AttributeConverter = (*Serializer)(nil)

// Option configures a Serializer.
type Option func(*Serializer)

// WithConverter replaces the converter used for kind. It is the hook for
// compatibility adapters, e.g. reading a legacy representation of a leaf type.
func WithConverter(kind xapiskema.Kind, c xapiskema.Converter) Option {
	return func(s *Serializer) {
		if c != nil {
			s.converters[kind] = c
		}
	}
}

// WithReadOpt sets the document limits used by DecodeStatement.
func WithReadOpt(opt xapiskema.ReadOpt) Option {
	return func(s *Serializer) { s.readOpt = opt }
}

// New returns a Serializer with the built-in converters registered.
func New(opts ...Option) *Serializer {
	s := &Serializer{converters: defaultConverters()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultConverters() map[xapiskema.Kind]xapiskema.Converter {
	return map[xapiskema.Kind]xapiskema.Converter{
		xapiskema.KindStatement:   statementConverter{},
		xapiskema.KindObject:      objectConverter{},
		xapiskema.KindResult:      resultConverter{},
		xapiskema.KindActor:       actorConverter{},
		xapiskema.KindVerb:        verbConverter{},
		xapiskema.KindScore:       scoreConverter{},
		xapiskema.KindDefinition:  definitionConverter{},
		xapiskema.KindContext:     contextConverter{},
		xapiskema.KindExtensions:  extensionsConverter{},
		xapiskema.KindAttachments: attachmentsConverter{},
		xapiskema.KindCreated:     timestampConverter{},
		xapiskema.KindStored:      timestampConverter{},
	}
}

// Kinds returns the kinds this Serializer can convert, sorted.
func (s *Serializer) Kinds() []xapiskema.Kind {
	return slices.Sorted(maps.Keys(s.converters))
}

func (s *Serializer) converter(kind xapiskema.Kind) (xapiskema.Converter, error) {
	c, ok := s.converters[kind]
	if !ok {
		return nil, xapiskema.Issues{{Path: "/", Code: xapiskema.CodeParseError, Message: fmt.Sprintf("no converter for kind %q", kind)}}
	}
	return c, nil
}

// NormalizeAttribute converts a typed value of the given kind to its raw form.
func (s *Serializer) NormalizeAttribute(ctx context.Context, v any, kind xapiskema.Kind) (any, error) {
	c, err := s.converter(kind)
	if err != nil {
		return nil, err
	}
	return c.Normalize(ctx, v, s)
}

// DenormalizeData interprets raw as the given kind.
func (s *Serializer) DenormalizeData(ctx context.Context, raw any, kind xapiskema.Kind) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := s.converter(kind)
	if err != nil {
		return nil, err
	}
	return c.Denormalize(ctx, raw, s)
}

// NormalizeStatement converts a statement to its raw document.
func (s *Serializer) NormalizeStatement(ctx context.Context, st *model.Statement) (map[string]any, error) {
	raw, err := s.NormalizeAttribute(ctx, st, xapiskema.KindStatement)
	if err != nil {
		return nil, err
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, xapiskema.Issues{{Path: "/", Code: xapiskema.CodeParseError, Message: fmt.Sprintf("statement converter returned %T", raw)}}
	}
	return doc, nil
}

// DenormalizeStatement converts a raw document to a statement. On failure no
// statement is returned and the error is Issues with exactly one entry.
func (s *Serializer) DenormalizeStatement(ctx context.Context, doc map[string]any) (*model.Statement, error) {
	return xapiskema.Denormalize[*model.Statement](ctx, s, doc, xapiskema.KindStatement)
}

// DecodeStatement reads one document from src and denormalizes it.
func (s *Serializer) DecodeStatement(ctx context.Context, src xapiskema.Source) (*model.Statement, error) {
	doc, err := xapiskema.DecodeDocument(src, s.readOpt)
	if err != nil {
		return nil, err
	}
	return s.DenormalizeStatement(ctx, doc)
}

// EncodeStatement normalizes st and renders it as canonical JSON.
func (s *Serializer) EncodeStatement(ctx context.Context, st *model.Statement) ([]byte, error) {
	doc, err := s.NormalizeStatement(ctx, st)
	if err != nil {
		return nil, err
	}
	return xapiskema.CanonicalDocument(doc)
}
