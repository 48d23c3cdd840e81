package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if f := data["field"]; f != "" {
		return msg + ": " + f
	}
	return msg
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須プロパティが不足しています"
		case "invalid_property":
			return "このプロパティは使用できません"
		case "discriminator_unknown":
			return "objectType がサポートされていません"
		case "nested_substatement":
			return "SubStatement を入れ子にすることはできません"
		case "unsupported_version":
			return "サポートされていないバージョンです"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "形式が不正です"
		case "semantic_violation":
			return "フィールド間の制約に違反しています"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "required":
			return "required property missing"
		case "invalid_property":
			return "property not allowed"
		case "discriminator_unknown":
			return "unsupported objectType"
		case "nested_substatement":
			return "sub-statement cannot contain a sub-statement"
		case "unsupported_version":
			return "unsupported statement version"
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "semantic_violation":
			return "cross-field rule violated"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
