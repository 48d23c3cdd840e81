package xapiskema

import (
	"context"
	"fmt"
)

// Kind names a target type the delegation capability can convert to and from.
type Kind string

const (
	KindStatement   Kind = "Statement"
	KindObject      Kind = "StatementObject"
	KindResult      Kind = "Result"
	KindActor       Kind = "Actor"
	KindVerb        Kind = "Verb"
	KindScore       Kind = "Score"
	KindDefinition  Kind = "Definition"
	KindContext     Kind = "Context"
	KindExtensions  Kind = "Extensions"
	KindAttachments Kind = "Attachment[]"
	KindCreated     Kind = "Created"
	KindStored      Kind = "Stored"
)

// AttributeConverter is the delegation capability every converter relies on
// to convert nested typed fields by declared target kind.
type AttributeConverter interface {
	// NormalizeAttribute converts a typed value of the given kind to its raw form.
	NormalizeAttribute(ctx context.Context, v any, kind Kind) (any, error)
	// DenormalizeData interprets raw as the given kind. It fails with Issues
	// when raw cannot be interpreted.
	DenormalizeData(ctx context.Context, raw any, kind Kind) (any, error)
}

// Converter converts a single kind in both directions. Implementations must
// be stateless; nested kinds are converted through ac.
type Converter interface {
	Normalize(ctx context.Context, v any, ac AttributeConverter) (any, error)
	Denormalize(ctx context.Context, raw any, ac AttributeConverter) (any, error)
}

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error) // wire -> domain, validating a
	Encode(ctx context.Context, b B) (A, error) // domain -> wire
}

// Denormalize is a typed wrapper around AttributeConverter.DenormalizeData.
func Denormalize[T any](ctx context.Context, ac AttributeConverter, raw any, kind Kind) (T, error) {
	var zero T
	v, err := ac.DenormalizeData(ctx, raw, kind)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: fmt.Sprintf("converter for %s returned %T, want %T", kind, v, zero)}}
	}
	return t, nil
}

// DenormalizeField denormalizes raw as kind and rebases any issue under the
// given field of the calling document.
func DenormalizeField[T any](ctx context.Context, ac AttributeConverter, field string, raw any, kind Kind) (T, error) {
	v, err := Denormalize[T](ctx, ac, raw, kind)
	if err != nil {
		var zero T
		return zero, Rebase(Root().Field(field).Pointer(), err)
	}
	return v, nil
}

// NormalizeField normalizes v as kind and rebases any issue under field.
func NormalizeField(ctx context.Context, ac AttributeConverter, field string, v any, kind Kind) (any, error) {
	raw, err := ac.NormalizeAttribute(ctx, v, kind)
	if err != nil {
		return nil, Rebase(Root().Field(field).Pointer(), err)
	}
	return raw, nil
}
