package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// GetEnvVariable reads an environment variable with a fallback.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// UnmarshalTask decodes an asynq task payload into dest.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

// FormatMoney renders an amount for user-facing messages, always with two
// decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// SanitizePhone normalizes an Israeli phone number to +972 format.
func SanitizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case strings.HasPrefix(d, "972"):
		return "+" + d
	case strings.HasPrefix(d, "0"):
		return "+972" + d[1:]
	case len(d) == 9:
		return "+972" + d
	default:
		return "+" + d
	}
}

// ValidIsraeliMobile reports whether a sanitized number is a valid Israeli
// mobile number (+972 followed by a known prefix).
func ValidIsraeliMobile(sanitized string) bool {
	if !strings.HasPrefix(sanitized, "+972") || len(sanitized) != 13 {
		return false
	}

	prefix := sanitized[4:6]
	switch prefix {
	case "50", "52", "53", "54", "55", "57", "58":
		return true
	}
	return false
}
