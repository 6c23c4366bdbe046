// Package i18n holds the localized default messages of schema violations.
package i18n

import "strings"

// Message codes.
const (
	// CodeRuleViolated is the default message of a violated rule. Data keys:
	// "path" and "constraint".
	CodeRuleViolated = "rule_violated"
	// CodeFieldMissing is the default message of a violated MustHave rule.
	// Data keys: "path".
	CodeFieldMissing = "field_missing"
)

// Translator retrieves localized messages for message codes.
// data provides values to embed in the message (for example "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		CodeRuleViolated: "Field '{path}' violated '{constraint}' constraint rule.",
		CodeFieldMissing: "Field '{path}' violated 'MustHave' constraint rule.",
	},
	"ja": {
		CodeRuleViolated: "フィールド '{path}' が '{constraint}' 制約に違反しました。",
		CodeFieldMissing: "必須フィールド '{path}' がありません。",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
