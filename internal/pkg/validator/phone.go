package validator

import (
	"errors"
	"strings"
)

const minPhoneDigits = 10

var ErrInvalidPhone = errors.New("phone number must contain at least 10 digits")

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func ValidatePhone(phone string) error {
	if len(digitsOnly(phone)) < minPhoneDigits {
		return ErrInvalidPhone
	}
	return nil
}

// NormalizePhone returns E.164-style digits: 10-digit numbers are treated as
// North American and prefixed with +1, anything longer keeps its country code.
func NormalizePhone(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) == minPhoneDigits {
		return "+1" + digits
	}
	return "+" + digits
}
