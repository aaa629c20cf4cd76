package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderbot-backend/internal/shared/i18n"
)

const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
)

// Cart is the single active cart of a customer. The row survives checkout
// and Clear; only its items are removed.
type Cart struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CustomerID      uuid.UUID `json:"customer_id" db:"customer_id"`
	DeliveryMethod  string    `json:"delivery_method" db:"delivery_method"`
	DeliveryAddress *string   `json:"delivery_address" db:"delivery_address"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SelectedOption is one resolved choice for a product option group,
// e.g. {Key: "size", Value: "large"}. Stored as JSONB on the item.
type SelectedOption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CartItem carries the unit price captured when the item was first added,
// so later product edits do not change a cart already in progress.
type CartItem struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	CartID       uuid.UUID        `json:"cart_id" db:"cart_id"`
	ProductID    uuid.UUID        `json:"product_id" db:"product_id"`
	Quantity     int              `json:"quantity" db:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price" db:"unit_price"`
	Options      []SelectedOption `json:"options" db:"options"`
	Instructions *string          `json:"instructions" db:"instructions"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// LineTotal is unit price times quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameOptions reports whether two selections are equal regardless of
// order. Items with equal product and options merge on add. Pairs are
// compared sorted so a repeated key cannot collapse into another
// selection's single entry.
func SameOptions(a, b []SelectedOption) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedOptions(a), sortedOptions(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sortedOptions(opts []SelectedOption) []SelectedOption {
	out := make([]SelectedOption, len(opts))
	copy(out, opts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// ItemDetail is a cart item joined with the product's name columns for
// display.
type ItemDetail struct {
	CartItem
	ProductName   string  `json:"product_name" db:"product_name"`
	ProductNameEN *string `json:"product_name_en" db:"product_name_en"`
	ProductNameHE *string `json:"product_name_he" db:"product_name_he"`
}

// DisplayName resolves the product name for a language.
func (d *ItemDetail) DisplayName(lang string) string {
	text := i18n.LocalizedText{Default: d.ProductName, ByLang: map[string]string{}}
	if d.ProductNameEN != nil {
		text.ByLang[i18n.LangEnglish] = *d.ProductNameEN
	}
	if d.ProductNameHE != nil {
		text.ByLang[i18n.LangHebrew] = *d.ProductNameHE
	}
	return text.Resolve(lang)
}

// SummaryLine is one rendered cart line.
type SummaryLine struct {
	ItemID       uuid.UUID        `json:"item_id"`
	ProductID    uuid.UUID        `json:"product_id"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	LineTotal    decimal.Decimal  `json:"line_total"`
	Options      []SelectedOption `json:"options"`
	Instructions *string          `json:"instructions"`
}

// Summary is the full cart view with totals. The delivery fee applies
// only when the delivery method is delivery.
type Summary struct {
	CartID          uuid.UUID       `json:"cart_id"`
	Lines           []SummaryLine   `json:"lines"`
	DeliveryMethod  string          `json:"delivery_method"`
	DeliveryAddress *string         `json:"delivery_address"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Total           decimal.Decimal `json:"total"`
}

// IsEmpty reports whether the summary has no lines.
func (s *Summary) IsEmpty() bool {
	return len(s.Lines) == 0
}

// BuildSummary computes per-line and grand totals for a cart.
func BuildSummary(cart *Cart, items []ItemDetail, deliveryFee decimal.Decimal, lang string) *Summary {
	summary := &Summary{
		CartID:          cart.ID,
		Lines:           make([]SummaryLine, 0, len(items)),
		DeliveryMethod:  cart.DeliveryMethod,
		DeliveryAddress: cart.DeliveryAddress,
		Subtotal:        decimal.Zero,
		DeliveryFee:     decimal.Zero,
		Total:           decimal.Zero,
	}

	for i := range items {
		item := &items[i]
		lineTotal := item.LineTotal()
		summary.Lines = append(summary.Lines, SummaryLine{
			ItemID:       item.ID,
			ProductID:    item.ProductID,
			Name:         item.DisplayName(lang),
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    lineTotal,
			Options:      item.Options,
			Instructions: item.Instructions,
		})
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
	}

	if len(items) > 0 && cart.DeliveryMethod == DeliveryMethodDelivery {
		summary.DeliveryFee = deliveryFee
	}
	summary.Total = summary.Subtotal.Add(summary.DeliveryFee)

	return summary
}
