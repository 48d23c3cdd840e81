package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xapiskema "github.com/reoring/xapiskema"
)

func TestFloorFractions(t *testing.T) {
	cases := map[string]string{
		"PT1M30S":       "PT1M30S",
		"PT1.75S":       "PT1S",
		"PT0,5S":        "PT0S",
		"P1.5DT2.25H":   "P1DT2H",
		"no digits":     "no digits",
		"PT12.3456789S": "PT12S",
	}
	for in, want := range cases {
		assert.Equal(t, want, FloorFractions(in), in)
	}
}

func TestValidateDuration(t *testing.T) {
	valid := []string{"PT1M30S", "P1Y2M3DT4H5M6S", "P2W", "P1D", "PT0S", "P1W2D"}
	for _, s := range valid {
		assert.NoError(t, ValidateDuration(s), s)
	}
	invalid := []string{"", "P", "PT", "1M", "PT1.5S", "P1S", "PT1D", "P-1D", "PT1M30", "pt1s"}
	for _, s := range invalid {
		assert.Error(t, ValidateDuration(s), s)
	}
}

func TestISO8601Duration_DecodeKeepsOriginal(t *testing.T) {
	c := ISO8601Duration()
	got, err := c.Decode(context.Background(), "PT1.75S")
	require.NoError(t, err)
	assert.Equal(t, "PT1.75S", got)

	out, err := c.Encode(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, "PT1.75S", out)
}

func TestISO8601Duration_DecodeInvalid(t *testing.T) {
	_, err := ISO8601Duration().Decode(context.Background(), "ninety seconds")
	require.Error(t, err)
	iss, ok := xapiskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, xapiskema.CodeInvalidFormat, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
}
