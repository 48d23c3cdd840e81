package normalizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
	"github.com/reoring/xapiskema/normalizer"
)

func denormalizeObject(t *testing.T, raw any) (model.StatementObject, error) {
	t.Helper()
	return xapiskema.Denormalize[model.StatementObject](context.Background(), normalizer.New(), raw, xapiskema.KindObject)
}

func subStatementDoc() map[string]any {
	return map[string]any{
		"objectType": "SubStatement",
		"actor":      map[string]any{"mbox": "mailto:bob@example.com"},
		"verb":       map[string]any{"id": "http://adlnet.gov/expapi/verbs/attended"},
		"object":     map[string]any{"id": "http://example.com/activities/meeting"},
	}
}

func TestObject_DiscriminatorDefaultsToActivity(t *testing.T) {
	withDefinition := func(m map[string]any) map[string]any {
		m["id"] = "http://example.com/activities/a"
		m["definition"] = map[string]any{"name": map[string]any{"en": "A"}}
		return m
	}
	implicit, err := denormalizeObject(t, withDefinition(map[string]any{}))
	require.NoError(t, err)
	explicit, err := denormalizeObject(t, withDefinition(map[string]any{"objectType": "Activity"}))
	require.NoError(t, err)
	null, err := denormalizeObject(t, withDefinition(map[string]any{"objectType": nil}))
	require.NoError(t, err)

	assert.Equal(t, explicit, implicit)
	assert.Equal(t, explicit, null)
	assert.Equal(t, &model.Activity{
		ID:         "http://example.com/activities/a",
		Definition: &model.Definition{Name: model.LanguageMap{"en": "A"}},
	}, explicit)
}

func TestObject_UnknownDiscriminator(t *testing.T) {
	for _, v := range []any{"Person", "activity", 7, true, ""} {
		_, err := denormalizeObject(t, map[string]any{"objectType": v, "id": "http://example.com/a"})
		iss := requireIssue(t, err, xapiskema.CodeDiscriminatorUnknown, "/objectType")
		assert.Equal(t, []string{"Activity", "Agent", "Group", "SubStatement", "StatementRef"}, iss.Params["allowed"])
	}
}

func TestObject_Activity(t *testing.T) {
	_, err := denormalizeObject(t, map[string]any{"objectType": "Activity"})
	requireIssue(t, err, xapiskema.CodeRequired, "/id")

	_, err = denormalizeObject(t, map[string]any{"id": 12})
	requireIssue(t, err, xapiskema.CodeInvalidType, "/id")

	_, err = denormalizeObject(t, map[string]any{"id": "http://example.com/a", "definition": "x"})
	requireIssue(t, err, xapiskema.CodeInvalidType, "/definition")

	_, err = denormalizeObject(t, map[string]any{"id": "http://example.com/a", "definition": map[string]any{"moreInfo": "not a url"}})
	requireIssue(t, err, xapiskema.CodeInvalidFormat, "/definition/moreInfo")
}

func TestObject_Actors(t *testing.T) {
	got, err := denormalizeObject(t, map[string]any{"objectType": "Agent", "mbox": "mailto:bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, agent("", "mailto:bob@example.com"), got)

	got, err = denormalizeObject(t, map[string]any{
		"objectType": "Group",
		"member":     []any{map[string]any{"mbox": "mailto:bob@example.com"}},
	})
	require.NoError(t, err)
	g, ok := got.(*model.Group)
	require.True(t, ok)
	assert.Len(t, g.Members, 1)
}

func TestObject_StatementRef(t *testing.T) {
	got, err := denormalizeObject(t, map[string]any{"objectType": "StatementRef", "id": "e05aa883-acaf-40ad-bf54-02c8ce485fb0"})
	require.NoError(t, err)
	assert.Equal(t, &model.StatementReference{StatementID: model.MustParseStatementID("e05aa883-acaf-40ad-bf54-02c8ce485fb0")}, got)

	for _, id := range []any{nil, 5, []any{"x"}} {
		_, err = denormalizeObject(t, map[string]any{"objectType": "StatementRef", "id": id})
		requireIssue(t, err, xapiskema.CodeInvalidType, "/id")
	}
	_, err = denormalizeObject(t, map[string]any{"objectType": "StatementRef", "id": "123"})
	requireIssue(t, err, xapiskema.CodeInvalidFormat, "/id")
}

func TestObject_SubStatement(t *testing.T) {
	got, err := denormalizeObject(t, subStatementDoc())
	require.NoError(t, err)
	sub, ok := got.(*model.SubStatement)
	require.True(t, ok)
	assert.Equal(t, activity("http://example.com/activities/meeting"), sub.Object)
	assert.Nil(t, sub.Result)
	assert.Nil(t, sub.Context)
	assert.Nil(t, sub.Created)

	doc := subStatementDoc()
	doc["result"] = map[string]any{"completion": true}
	doc["context"] = map[string]any{"platform": "web"}
	doc["timestamp"] = "2020-01-01T00:00:00Z"
	got, err = denormalizeObject(t, doc)
	require.NoError(t, err)
	sub = got.(*model.SubStatement)
	assert.True(t, *sub.Result.Completion)
	assert.Equal(t, "web", sub.Context.Platform)
	assert.Equal(t, 2020, sub.Created.Year())
}

func TestObject_SubStatementCannotNest(t *testing.T) {
	doc := subStatementDoc()
	doc["object"] = subStatementDoc()
	_, err := denormalizeObject(t, doc)
	requireIssue(t, err, xapiskema.CodeNestedSubStatement, "/object/objectType")

	// Checked before every other rule.
	doc["id"] = "e05aa883-acaf-40ad-bf54-02c8ce485fb0"
	doc["authority"] = map[string]any{}
	delete(doc, "actor")
	doc["object"] = map[string]any{"objectType": "SubStatement"}
	_, err = denormalizeObject(t, doc)
	requireIssue(t, err, xapiskema.CodeNestedSubStatement, "/object/objectType")
}

func TestObject_SubStatementNestingInsideStatement(t *testing.T) {
	inner := subStatementDoc()
	inner["object"] = subStatementDoc()
	doc := baseDoc()
	doc["object"] = inner
	_, err := denormalize(t, doc)
	requireIssue(t, err, xapiskema.CodeNestedSubStatement, "/object/object/objectType")
}

func TestObject_SubStatementForbiddenProperties(t *testing.T) {
	values := map[string]any{
		"id":        "e05aa883-acaf-40ad-bf54-02c8ce485fb0",
		"stored":    "2020-01-01T00:00:00Z",
		"version":   "1.0.0",
		"authority": map[string]any{"mbox": "mailto:lrs@example.com"},
	}
	for field, v := range values {
		doc := subStatementDoc()
		doc[field] = v
		_, err := denormalizeObject(t, doc)
		iss := requireIssue(t, err, xapiskema.CodeInvalidProperty, "/"+field)
		assert.Equal(t, field, iss.Params["field"])
	}
}

func TestObject_SubStatementRequiresObject(t *testing.T) {
	for _, empty := range []any{nil, map[string]any{}, ""} {
		doc := subStatementDoc()
		doc["object"] = empty
		_, err := denormalizeObject(t, doc)
		requireIssue(t, err, xapiskema.CodeRequired, "/object")
	}
	doc := subStatementDoc()
	delete(doc, "verb")
	_, err := denormalizeObject(t, doc)
	requireIssue(t, err, xapiskema.CodeRequired, "/verb")
}

func TestObject_SubStatementContextGating(t *testing.T) {
	for _, field := range []string{"revision", "platform"} {
		doc := subStatementDoc()
		doc["object"] = map[string]any{"objectType": "Agent", "mbox": "mailto:carol@example.com"}
		doc["context"] = map[string]any{field: "x"}

		_, err := denormalizeObject(t, doc)
		requireIssue(t, err, xapiskema.CodeInvalidProperty, "/context/"+field)

		st := baseDoc()
		st["object"] = doc
		_, err = denormalize(t, st)
		requireIssue(t, err, xapiskema.CodeInvalidProperty, "/object/context/"+field)
	}
}

func TestObject_NormalizeVariants(t *testing.T) {
	s := normalizer.New()
	ctx := context.Background()

	raw, err := s.NormalizeAttribute(ctx, &model.StatementReference{StatementID: model.MustParseStatementID("e05aa883-acaf-40ad-bf54-02c8ce485fb0")}, xapiskema.KindObject)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"objectType": "StatementRef", "id": "e05aa883-acaf-40ad-bf54-02c8ce485fb0"}, raw)

	raw, err = s.NormalizeAttribute(ctx, &model.SubStatement{
		Actor:  agent("", "mailto:bob@example.com"),
		Verb:   model.Verb{ID: "http://adlnet.gov/expapi/verbs/attended"},
		Object: &model.StatementReference{StatementID: model.MustParseStatementID("e05aa883-acaf-40ad-bf54-02c8ce485fb0")},
	}, xapiskema.KindObject)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"objectType": "SubStatement",
		"actor":      map[string]any{"objectType": "Agent", "mbox": "mailto:bob@example.com"},
		"verb":       map[string]any{"id": "http://adlnet.gov/expapi/verbs/attended"},
		"object":     map[string]any{"objectType": "StatementRef", "id": "e05aa883-acaf-40ad-bf54-02c8ce485fb0"},
	}, raw)

	_, err = s.NormalizeAttribute(ctx, "activity", xapiskema.KindObject)
	requireIssue(t, err, xapiskema.CodeInvalidType, "/")
}
