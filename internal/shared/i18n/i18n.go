// Package i18n resolves display text for catalog entities and bot
// messages. Entities carry a default text plus optional per-language
// overrides; missing translations fall back to the default instead of
// erroring.
package i18n

import (
	"strings"
	"unicode"
)

const (
	LangEnglish = "en"
	LangHebrew  = "he"
)

// SupportedLanguages lists the languages the bot can speak.
var SupportedLanguages = []string{LangEnglish, LangHebrew}

// IsSupported reports whether lang is a known language code.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// LocalizedText is a default string with optional per-language overrides.
type LocalizedText struct {
	Default string
	ByLang  map[string]string
}

// Resolve returns the override for lang when present and non-empty,
// otherwise the default. It never fails: an entity with no text at all is
// a data-entry problem, not a runtime one.
func (t LocalizedText) Resolve(lang string) string {
	if text, ok := t.ByLang[lang]; ok && text != "" {
		return text
	}
	return t.Default
}

// DetectLanguage guesses the language of admin-entered text by script.
// Hebrew wins on mixed input because it is checked first; that ambiguity
// is accepted rather than corrected. Empty or non-alphabetic input is
// reported as English.
func DetectLanguage(text string) string {
	for _, r := range text {
		if isHebrewRune(r) {
			return LangHebrew
		}
	}
	for _, r := range text {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return LangEnglish
		}
	}
	return LangEnglish
}

// Hebrew block plus the presentation-forms block used by some input methods.
func isHebrewRune(r rune) bool {
	return (r >= 0x0590 && r <= 0x05FF) || (r >= 0xFB1D && r <= 0xFB4F)
}

// Render looks up a message key for a language and substitutes
// {placeholder} params. Missing keys fall back to English, then to the
// key itself.
func Render(key, lang string, params map[string]string) string {
	msg := lookup(key, lang)

	if len(params) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func lookup(key, lang string) string {
	if byKey, ok := messages[lang]; ok {
		if msg, ok := byKey[key]; ok {
			return msg
		}
	}
	if lang != LangEnglish {
		if msg, ok := messages[LangEnglish][key]; ok {
			return msg
		}
	}
	return key
}
