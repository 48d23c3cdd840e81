package normalizer

import (
	"context"
	"fmt"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type scoreConverter struct{}

func (scoreConverter) Normalize(_ context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	s, ok := v.(*model.Score)
	if !ok || s == nil {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected *model.Score, got %T", v))
	}
	data := map[string]any{}
	for key, p := range map[string]*float64{"scaled": s.Scaled, "raw": s.Raw, "min": s.Min, "max": s.Max} {
		if p != nil {
			data[key] = *p
		}
	}
	return data, nil
}

func (scoreConverter) Denormalize(_ context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	s := &model.Score{}
	for _, f := range []struct {
		key string
		dst **float64
	}{
		{"scaled", &s.Scaled},
		{"raw", &s.Raw},
		{"min", &s.Min},
		{"max", &s.Max},
	} {
		v, ok := isset(data, f.key)
		if !ok {
			continue
		}
		n, ok := number(v)
		if !ok {
			return nil, xapiskema.InvalidType(f.key, "number")
		}
		*f.dst = &n
	}
	if err := validateStruct(s); err != nil {
		return nil, err
	}
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return nil, xapiskema.IssueAt(xapiskema.Root().Field("min"), xapiskema.CodeSemanticViolation, "min is greater than max")
	}
	if s.Raw != nil {
		if s.Min != nil && *s.Raw < *s.Min {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("raw"), xapiskema.CodeSemanticViolation, "raw is less than min")
		}
		if s.Max != nil && *s.Raw > *s.Max {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("raw"), xapiskema.CodeSemanticViolation, "raw is greater than max")
		}
	}
	return s, nil
}
