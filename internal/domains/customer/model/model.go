package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a Telegram user who has completed onboarding.
// Customers are never hard-deleted.
type Customer struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TelegramID      int64     `json:"telegram_id" db:"telegram_id"`
	FullName        string    `json:"full_name" db:"full_name"`
	PhoneNumber     string    `json:"phone_number" db:"phone_number"`
	DeliveryAddress *string   `json:"delivery_address" db:"delivery_address"`
	Language        string    `json:"language" db:"language"`
	IsAdmin         bool      `json:"is_admin" db:"is_admin"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// HasAddress reports whether a delivery address is on file.
func (c *Customer) HasAddress() bool {
	return c.DeliveryAddress != nil && *c.DeliveryAddress != ""
}
