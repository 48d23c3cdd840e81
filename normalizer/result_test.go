package normalizer_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
	"github.com/reoring/xapiskema/normalizer"
)

func denormalizeResult(t *testing.T, raw any) (*model.Result, error) {
	t.Helper()
	return xapiskema.Denormalize[*model.Result](context.Background(), normalizer.New(), raw, xapiskema.KindResult)
}

func TestResult_BooleanStrictness(t *testing.T) {
	for _, field := range []string{"success", "completion"} {
		for _, v := range []any{"true", "false", "1", 1, json.Number("0"), []any{true}} {
			_, err := denormalizeResult(t, map[string]any{field: v})
			iss := requireIssue(t, err, xapiskema.CodeInvalidType, "/"+field)
			assert.Equal(t, field, iss.Params["field"])
		}
		r, err := denormalizeResult(t, map[string]any{field: false})
		require.NoError(t, err)
		if field == "success" {
			require.NotNil(t, r.Success)
			assert.False(t, *r.Success)
			assert.Nil(t, r.Completion)
		} else {
			require.NotNil(t, r.Completion)
			assert.False(t, *r.Completion)
			assert.Nil(t, r.Success)
		}
	}
}

func TestResult_NullMeansUnset(t *testing.T) {
	r, err := denormalizeResult(t, map[string]any{"success": nil, "completion": nil, "response": nil, "duration": nil})
	require.NoError(t, err)
	assert.Equal(t, &model.Result{}, r)
}

func TestResult_Response(t *testing.T) {
	_, err := denormalizeResult(t, map[string]any{"response": 5})
	requireIssue(t, err, xapiskema.CodeInvalidType, "/response")

	r, err := denormalizeResult(t, map[string]any{"response": ""})
	require.NoError(t, err)
	require.NotNil(t, r.Response)
	assert.Empty(t, *r.Response)
}

func TestResult_Duration(t *testing.T) {
	valid := []string{"PT1M30S", "PT1.75S", "PT0,5S", "P1DT2.5H", "P3W", "P1Y2M3DT4H5M6S"}
	for _, d := range valid {
		r, err := denormalizeResult(t, map[string]any{"duration": d})
		require.NoError(t, err, d)
		assert.Equal(t, d, *r.Duration, "the original string is kept")
	}
	invalid := []any{"ninety seconds", "P", "PT", "1H", "PT-1S", "", 90}
	for _, d := range invalid {
		_, err := denormalizeResult(t, map[string]any{"duration": d})
		requireIssue(t, err, xapiskema.CodeInvalidFormat, "/duration")
	}
}

func TestResult_ScoreAndExtensions(t *testing.T) {
	r, err := denormalizeResult(t, map[string]any{
		"score":      map[string]any{"scaled": json.Number("-0.25"), "raw": 3, "min": 0, "max": 10},
		"extensions": map[string]any{"http://example.com/ext/a": []any{"x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, -0.25, *r.Score.Scaled)
	assert.Equal(t, 3.0, *r.Score.Raw)
	assert.Equal(t, []any{"x"}, r.Extensions["http://example.com/ext/a"])

	_, err = denormalizeResult(t, map[string]any{"score": map[string]any{"scaled": 1.5}})
	requireIssue(t, err, xapiskema.CodeInvalidFormat, "/score/scaled")

	_, err = denormalizeResult(t, map[string]any{"score": map[string]any{"raw": 11, "max": 10}})
	requireIssue(t, err, xapiskema.CodeSemanticViolation, "/score/raw")

	_, err = denormalizeResult(t, map[string]any{"score": map[string]any{"raw": "10"}})
	requireIssue(t, err, xapiskema.CodeInvalidType, "/score/raw")

	for _, v := range []any{json.Number("NaN"), json.Number("+Inf"), math.Inf(-1), math.NaN()} {
		_, err = denormalizeResult(t, map[string]any{"score": map[string]any{"raw": v}})
		requireIssue(t, err, xapiskema.CodeInvalidType, "/score/raw")
	}

	_, err = denormalizeResult(t, map[string]any{"extensions": map[string]any{"not an iri": 1}})
	requireIssue(t, err, xapiskema.CodeInvalidFormat, "/extensions/not an iri")
}

func TestResult_NormalizeEmpty(t *testing.T) {
	raw, err := normalizer.New().NormalizeAttribute(context.Background(), &model.Result{}, xapiskema.KindResult)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, raw)

	b, err := xapiskema.CanonicalDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestResult_NormalizeEmitsOnlyPresentFields(t *testing.T) {
	raw, err := normalizer.New().NormalizeAttribute(context.Background(), &model.Result{
		Success:  ptr(false),
		Duration: ptr("PT5S"),
	}, xapiskema.KindResult)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": false, "duration": "PT5S"}, raw)
}
