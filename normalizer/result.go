package normalizer

import (
	"context"
	"fmt"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/codec"
	"github.com/reoring/xapiskema/model"
)

var durationCodec = codec.ISO8601Duration()

type resultConverter struct{}

func (resultConverter) Normalize(ctx context.Context, v any, ac xapiskema.AttributeConverter) (any, error) {
	r, ok := v.(*model.Result)
	if !ok || r == nil {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected *model.Result, got %T", v))
	}
	// An empty map, not nil: a result with no fields still renders as {}.
	data := map[string]any{}
	if r.Score != nil {
		score, err := xapiskema.NormalizeField(ctx, ac, "score", r.Score, xapiskema.KindScore)
		if err != nil {
			return nil, err
		}
		data["score"] = score
	}
	if r.Success != nil {
		data["success"] = *r.Success
	}
	if r.Completion != nil {
		data["completion"] = *r.Completion
	}
	if r.Response != nil {
		data["response"] = *r.Response
	}
	if r.Duration != nil {
		d, err := durationCodec.Encode(ctx, *r.Duration)
		if err != nil {
			return nil, rebase("duration", err)
		}
		data["duration"] = d
	}
	if r.Extensions != nil {
		ext, err := xapiskema.NormalizeField(ctx, ac, "extensions", r.Extensions, xapiskema.KindExtensions)
		if err != nil {
			return nil, err
		}
		data["extensions"] = ext
	}
	return data, nil
}

func (resultConverter) Denormalize(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	r := &model.Result{}

	if v, ok := isset(data, "score"); ok {
		if r.Score, err = xapiskema.DenormalizeField[*model.Score](ctx, ac, "score", v, xapiskema.KindScore); err != nil {
			return nil, err
		}
	}
	if r.Success, err = strictBool(data, "success"); err != nil {
		return nil, err
	}
	if r.Completion, err = strictBool(data, "completion"); err != nil {
		return nil, err
	}
	if v, ok := isset(data, "response"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, xapiskema.InvalidType("response", "string")
		}
		r.Response = &s
	}
	if v, ok := isset(data, "duration"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, xapiskema.InvalidFormat("duration", "ISO 8601 duration", nil)
		}
		d, err := durationCodec.Decode(ctx, s)
		if err != nil {
			return nil, rebase("duration", err)
		}
		r.Duration = &d
	}
	if v, ok := isset(data, "extensions"); ok {
		if r.Extensions, err = xapiskema.DenormalizeField[model.Extensions](ctx, ac, "extensions", v, xapiskema.KindExtensions); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// strictBool reads an optional boolean. Only a real boolean is accepted;
// "true", 1 and similar stand-ins are type errors.
func strictBool(data map[string]any, key string) (*bool, error) {
	v, ok := isset(data, key)
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root().Field(key), xapiskema.CodeInvalidType,
			fmt.Sprintf("the %s property in result has a wrong data type (%s)", key, describe(v)), "field", key, "expected", "boolean")
	}
	return &b, nil
}
