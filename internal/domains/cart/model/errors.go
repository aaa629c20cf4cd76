package model

import "errors"

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrMissingAddress   = errors.New("delivery requires an address")
	ErrInvalidDelivery  = errors.New("invalid delivery method")
	ErrUnknownOption    = errors.New("unknown product option")
	ErrDuplicateOption  = errors.New("duplicate product option")
)
