package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/xapiskema/model"
)

func TestStatementID(t *testing.T) {
	id, err := model.ParseStatementID("12345678-1234-4678-9234-567812345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678-1234-4678-9234-567812345678", id.String())

	_, err = model.ParseStatementID("not-a-uuid")
	assert.Error(t, err)

	assert.NotEqual(t, model.NewStatementID(), model.NewStatementID())
	assert.Panics(t, func() { model.MustParseStatementID("nope") })
}

func TestIFICount(t *testing.T) {
	assert.Equal(t, 0, model.InverseFunctionalIdentifier{}.Count())
	assert.Equal(t, 1, model.InverseFunctionalIdentifier{Mbox: "mailto:a@example.com"}.Count())
	assert.Equal(t, 2, model.InverseFunctionalIdentifier{
		OpenID:  "http://example.com/openid",
		Account: &model.Account{HomePage: "http://example.com", Name: "a"},
	}.Count())
}

func TestObjectTypes(t *testing.T) {
	for _, tc := range []struct {
		obj  model.StatementObject
		want model.ObjectType
	}{
		{&model.Activity{}, model.ObjectTypeActivity},
		{&model.Agent{}, model.ObjectTypeAgent},
		{&model.Group{}, model.ObjectTypeGroup},
		{&model.StatementReference{}, model.ObjectTypeStatementRef},
		{&model.SubStatement{}, model.ObjectTypeSubStatement},
	} {
		assert.Equal(t, tc.want, tc.obj.ObjectType())
	}
}

func TestIsVoidVerb(t *testing.T) {
	assert.True(t, model.Verb{ID: model.VoidVerbID}.IsVoidVerb())
	assert.False(t, model.Verb{ID: "http://adlnet.gov/expapi/verbs/completed"}.IsVoidVerb())
}
