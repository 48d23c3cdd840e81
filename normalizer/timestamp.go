package normalizer

import (
	"context"
	"fmt"
	"time"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/codec"
)

var timeCodec = codec.TimeRFC3339()

// timestampConverter serves both the Created and Stored kinds.
type timestampConverter struct{}

func (timestampConverter) Normalize(ctx context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected time.Time, got %T", v))
	}
	return timeCodec.Encode(ctx, t)
}

func (timestampConverter) Denormalize(ctx context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, "expected an RFC 3339 string", "expected", "string")
	}
	return timeCodec.Decode(ctx, s)
}
