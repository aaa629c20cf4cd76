package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"hebrew", "לחם", LangHebrew},
		{"english", "Bread", LangEnglish},
		{"mixed scripts hebrew wins", "Bread לחם", LangHebrew},
		{"hebrew presentation forms", "וּ", LangHebrew},
		{"empty", "", LangEnglish},
		{"digits only", "1234", LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestLocalizedTextResolve(t *testing.T) {
	text := LocalizedText{
		Default: "Bread",
		ByLang:  map[string]string{"he": "לחם"},
	}

	assert.Equal(t, "לחם", text.Resolve("he"))
	assert.Equal(t, "Bread", text.Resolve("en"))
	// Unsupported language falls back to the default.
	assert.Equal(t, "Bread", text.Resolve("fr"))
}

func TestLocalizedTextResolveEmptyOverride(t *testing.T) {
	text := LocalizedText{
		Default: "Bread",
		ByLang:  map[string]string{"he": ""},
	}

	assert.Equal(t, "Bread", text.Resolve("he"))
}

func TestRender(t *testing.T) {
	got := Render(MsgItemAdded, LangEnglish, map[string]string{
		"product":  "Kubaneh",
		"quantity": "2",
	})
	assert.Equal(t, "Added Kubaneh x2 to your cart.", got)
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	// NEW_ORDER_ADMIN has no Hebrew translation; the English text is used.
	got := Render(MsgNewOrderAdmin, LangHebrew, nil)
	assert.Contains(t, got, "New order")
}

func TestRenderUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "NO_SUCH_KEY", Render("NO_SUCH_KEY", LangEnglish, nil))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "confirmed", StatusName("confirmed", LangEnglish))
	assert.Equal(t, "אושרה", StatusName("confirmed", LangHebrew))
	// Unsupported language falls back to English.
	assert.Equal(t, "confirmed", StatusName("confirmed", "fr"))
	// Unknown status returns the raw value.
	assert.Equal(t, "weird", StatusName("weird", LangHebrew))
}
