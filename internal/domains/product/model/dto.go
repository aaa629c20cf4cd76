package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the admin payload for a new product.
type CreateProductRequest struct {
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	NameEN        *string         `json:"name_en"`
	NameHE        *string         `json:"name_he"`
	Description   *string         `json:"description"`
	DescriptionEN *string         `json:"description_en"`
	DescriptionHE *string         `json:"description_he"`
	Price         decimal.Decimal `json:"price"`
	Options       []OptionGroup   `json:"options"`
	Availability  *Availability   `json:"availability"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Required.Error("category_id is required")),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Price, validation.By(positivePrice)),
		validation.Field(&r.Availability, validation.By(validAvailability)),
	)
}

func positivePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || !price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

func validAvailability(value interface{}) error {
	constraint, _ := value.(*Availability)
	if constraint == nil {
		return nil
	}
	if len(constraint.Weekdays) == 0 || constraint.Start == "" || constraint.End == "" {
		return ErrInvalidAvailability
	}
	return nil
}

// UpdateProductRequest updates an existing product. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID       `json:"category_id"`
	Name          *string          `json:"name"`
	NameEN        *string          `json:"name_en"`
	NameHE        *string          `json:"name_he"`
	Description   *string          `json:"description"`
	DescriptionEN *string          `json:"description_en"`
	DescriptionHE *string          `json:"description_he"`
	Price         *decimal.Decimal `json:"price"`
	Options       []OptionGroup    `json:"options"`
	Availability  *Availability    `json:"availability"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(2, 100)),
		),
		validation.Field(&r.Price, validation.By(func(value interface{}) error {
			price, _ := value.(*decimal.Decimal)
			if price != nil && !price.IsPositive() {
				return ErrInvalidPrice
			}
			return nil
		})),
		validation.Field(&r.Availability, validation.By(validAvailability)),
	)
}
