package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber normalizes a phone number to E.164 format.
// Assumes Indian phone numbers if no country code is provided.
func NormalizePhoneNumber(phone string) (string, error) {
	// Trim whitespace
	phone = strings.TrimSpace(phone)

	// Parse the phone number (default to India - IN)
	num, err := phonenumbers.Parse(phone, "IN")
	if err != nil {
		return "", err
	}

	// Validate the phone number
	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	// Format to E.164 (e.g., +919876543210)
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// CleanPhoneNumber normalizes when it can and otherwise returns the
// trimmed input. Guest lists carry landlines, shared family numbers and
// half-remembered digits; a bad number should not block a record.
func CleanPhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if normalized, err := NormalizePhoneNumber(phone); err == nil {
		return normalized
	}
	return phone
}
