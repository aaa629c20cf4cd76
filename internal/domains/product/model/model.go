package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderbot-backend/internal/shared/i18n"
)

// Product is a menu item. Deactivation is a soft delete; order items keep
// their own snapshot of name and price so product edits never rewrite
// history.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	CategoryID    uuid.UUID       `json:"category_id" db:"category_id"`
	Name          string          `json:"name" db:"name"`
	NameEN        *string         `json:"name_en" db:"name_en"`
	NameHE        *string         `json:"name_he" db:"name_he"`
	Description   *string         `json:"description" db:"description"`
	DescriptionEN *string         `json:"description_en" db:"description_en"`
	DescriptionHE *string         `json:"description_he" db:"description_he"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Options       []OptionGroup   `json:"options" db:"options"`
	Availability  *Availability   `json:"availability" db:"availability"`
	ImageKey      *string         `json:"image_key" db:"image_key"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// OptionGroup is a closed set of choices offered for a product
// (e.g. size: small/large). Stored as JSONB.
type OptionGroup struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Availability restricts when a product can be ordered: a set of
// weekdays plus an inclusive time-of-day window. A nil Availability means
// always orderable.
type Availability struct {
	Weekdays []string `json:"weekdays"` // lowercase english weekday names
	Start    string   `json:"start"`    // "09:00"
	End      string   `json:"end"`      // "18:00"
}

// IsAvailableAt reports whether the constraint allows ordering at t.
// Window bounds are inclusive. A malformed window is treated as
// unavailable rather than silently open.
func (a *Availability) IsAvailableAt(t time.Time) bool {
	if a == nil {
		return true
	}

	weekday := weekdayName(t.Weekday())
	allowed := false
	for _, d := range a.Weekdays {
		if d == weekday {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	start, err := time.Parse("15:04", a.Start)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", a.End)
	if err != nil {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	return minutes >= startMin && minutes <= endMin
}

func weekdayName(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// LocalizedName builds the fallback chain for the product name.
func (p *Product) LocalizedName() i18n.LocalizedText {
	text := i18n.LocalizedText{Default: p.Name, ByLang: map[string]string{}}
	if p.NameEN != nil {
		text.ByLang[i18n.LangEnglish] = *p.NameEN
	}
	if p.NameHE != nil {
		text.ByLang[i18n.LangHebrew] = *p.NameHE
	}
	return text
}

// LocalizedDescription builds the fallback chain for the description.
func (p *Product) LocalizedDescription() i18n.LocalizedText {
	text := i18n.LocalizedText{ByLang: map[string]string{}}
	if p.Description != nil {
		text.Default = *p.Description
	}
	if p.DescriptionEN != nil {
		text.ByLang[i18n.LangEnglish] = *p.DescriptionEN
	}
	if p.DescriptionHE != nil {
		text.ByLang[i18n.LangHebrew] = *p.DescriptionHE
	}
	return text
}

// DisplayName resolves the product name for a language.
func (p *Product) DisplayName(lang string) string {
	return p.LocalizedName().Resolve(lang)
}
