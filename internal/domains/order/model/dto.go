package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateOrderRequest places an order from the customer's current cart.
type CreateOrderRequest struct {
	Note *string `json:"note"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note, validation.When(r.Note != nil, validation.Length(0, 500))),
	)
}

// UpdateStatusRequest moves an order along the lifecycle graph.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(
				string(StatusPending), string(StatusConfirmed), string(StatusPreparing),
				string(StatusReady), string(StatusCompleted), string(StatusCancelled),
			).Error("invalid order status"),
		),
	)
}
