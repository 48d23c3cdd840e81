package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	assert.Equal(t, "invalid type", T("invalid_type", nil))
	assert.Equal(t, "required property missing: actor", T("required", map[string]string{"field": "actor"}))

	SetLanguage("ja")
	assert.Equal(t, "型が不正です", T("invalid_type", nil))
	assert.Equal(t, "SubStatement を入れ子にすることはできません", T("nested_substatement", nil))
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	t.Cleanup(func() { SetTranslator(nil) })

	SetTranslator(upper{})
	assert.Equal(t, "X-required", T("required", nil))

	SetTranslator(nil)
	assert.Equal(t, "required property missing", T("required", nil))
}
