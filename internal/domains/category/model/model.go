package model

import (
	"time"

	"github.com/google/uuid"

	"orderbot-backend/internal/shared/i18n"
)

// Category groups products on the menu. Deactivation is a soft delete so
// historical order items keep valid references.
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	NameEN       *string   `json:"name_en" db:"name_en"`
	NameHE       *string   `json:"name_he" db:"name_he"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LocalizedName builds the fallback chain for display.
func (c *Category) LocalizedName() i18n.LocalizedText {
	text := i18n.LocalizedText{Default: c.Name, ByLang: map[string]string{}}
	if c.NameEN != nil {
		text.ByLang[i18n.LangEnglish] = *c.NameEN
	}
	if c.NameHE != nil {
		text.ByLang[i18n.LangHebrew] = *c.NameHE
	}
	return text
}

// DisplayName resolves the category name for a language.
func (c *Category) DisplayName(lang string) string {
	return c.LocalizedName().Resolve(lang)
}
