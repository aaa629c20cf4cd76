package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"orderbot-backend/internal/shared/utils"
)

// RegisterRequest carries the onboarding data collected by the bot.
type RegisterRequest struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Language   string `json:"language"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TelegramID, validation.Required.Error("telegram id is required")),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.By(israeliMobile),
		),
	)
}

func israeliMobile(value interface{}) error {
	phone, _ := value.(string)
	if !utils.ValidIsraeliMobile(utils.SanitizePhone(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// UpdateAddressRequest updates the customer's stored delivery address.
type UpdateAddressRequest struct {
	Address string `json:"address"`
}

func (r UpdateAddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address,
			validation.Required.Error("address is required"),
			validation.Length(3, 500),
		),
	)
}
