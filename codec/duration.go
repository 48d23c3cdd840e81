package codec

import (
	"context"
	"errors"
	"regexp"
	"strings"

	xapiskema "github.com/reoring/xapiskema"
)

// ISO8601Duration returns a Codec[string, string] for result durations.
//
// Decode floors every decimal number in the input (for example PT1.75S becomes
// PT1S) and validates the floored copy as an ISO 8601 duration. On success it
// returns the input unchanged: the floored copy is only used for validation.
// Encode returns its argument.
func ISO8601Duration() xapiskema.Codec[string, string] { return durationCodec{} }

type durationCodec struct{}

func (durationCodec) Decode(ctx context.Context, a string) (string, error) {
	if err := ValidateDuration(FloorFractions(a)); err != nil {
		iss := xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidFormat, "not an ISO 8601 duration", "format", "ISO 8601 duration")
		iss[0].Cause = err
		return "", iss
	}
	return a, nil
}

func (durationCodec) Encode(ctx context.Context, b string) (string, error) { return b, nil }

var decimalNumber = regexp.MustCompile(`\d+[.,]\d+`)

// FloorFractions replaces every decimal number (with '.' or ',' as separator)
// by its integer part.
func FloorFractions(s string) string {
	return decimalNumber.ReplaceAllStringFunc(s, func(m string) string {
		return m[:strings.IndexAny(m, ".,")]
	})
}

var durationPattern = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+W)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+S)?)?$`)

var (
	errNoDesignator = errors.New("duration must start with P")
	errEmpty        = errors.New("duration has no components")
	errEmptyTime    = errors.New("duration time part has no components")
	errSyntax       = errors.New("malformed duration")
)

// ValidateDuration checks s against the designator form of ISO 8601
// durations (PnYnMnWnDTnHnMnS) with integer components.
func ValidateDuration(s string) error {
	if !strings.HasPrefix(s, "P") {
		return errNoDesignator
	}
	if !durationPattern.MatchString(s) {
		return errSyntax
	}
	if s == "P" {
		return errEmpty
	}
	if strings.HasSuffix(s, "T") {
		return errEmptyTime
	}
	return nil
}
