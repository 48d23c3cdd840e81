package codec

import (
	"context"
	"time"

	xapiskema "github.com/reoring/xapiskema"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and
// time.Time. Encoding normalizes to UTC.
func TimeRFC3339() xapiskema.Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		iss := xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidFormat, "invalid RFC3339 time", "format", "RFC3339")
		iss[0].Cause = err
		return time.Time{}, iss
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeRequired, "zero time")
	}
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
