package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AddItemRequest adds a product to the customer's cart.
type AddItemRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     int              `json:"quantity"`
	Options      []SelectedOption `json:"options"`
	Instructions *string          `json:"instructions"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required.Error("product_id is required")),
		validation.Field(&r.Quantity,
			validation.Min(1).Error("quantity must be at least 1"),
			validation.Max(99),
		),
	)
}

// SetDeliveryRequest switches the cart between pickup and delivery.
type SetDeliveryRequest struct {
	Method  string  `json:"method" binding:"required"`
	Address *string `json:"address"`
}

func (r SetDeliveryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method,
			validation.Required.Error("method is required"),
			validation.In(DeliveryMethodPickup, DeliveryMethodDelivery).Error("invalid delivery method"),
		),
	)
}
