package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest is the admin payload for a new category. The
// default name is required; per-language variants are optional and the
// name's language is auto-detected on write.
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	NameEN       *string `json:"name_en"`
	NameHE       *string `json:"name_he"`
	DisplayOrder int     `json:"display_order"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.DisplayOrder, validation.Min(0)),
	)
}

// UpdateCategoryRequest updates an existing category. Nil fields are left
// unchanged.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	NameEN       *string `json:"name_en"`
	NameHE       *string `json:"name_he"`
	DisplayOrder *int    `json:"display_order"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(2, 100)),
		),
		validation.Field(&r.DisplayOrder,
			validation.When(r.DisplayOrder != nil, validation.Min(0)),
		),
	)
}
