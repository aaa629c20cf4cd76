package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"050-1234567", "+972501234567"},
		{"0501234567", "+972501234567"},
		{"+972501234567", "+972501234567"},
		{"972501234567", "+972501234567"},
		{"501234567", "+972501234567"},
		{"(050) 123 4567", "+972501234567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePhone(tt.input))
		})
	}
}

func TestValidIsraeliMobile(t *testing.T) {
	assert.True(t, ValidIsraeliMobile("+972501234567"))
	assert.True(t, ValidIsraeliMobile("+972541234567"))
	assert.False(t, ValidIsraeliMobile("+972401234567"), "40 is not a mobile prefix")
	assert.False(t, ValidIsraeliMobile("+97250123456"), "too short")
	assert.False(t, ValidIsraeliMobile("+15551234567"), "not israeli")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "70.00", FormatMoney(decimal.NewFromInt(70)))
	assert.Equal(t, "12.50", FormatMoney(decimal.RequireFromString("12.5")))
}
