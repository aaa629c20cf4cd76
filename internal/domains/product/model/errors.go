package model

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidAvailability = errors.New("availability needs weekdays and a time window")
)
