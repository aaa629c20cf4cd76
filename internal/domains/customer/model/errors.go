package model

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidPhone     = errors.New("invalid israeli mobile number")
	ErrInvalidLanguage  = errors.New("unsupported language")
)
