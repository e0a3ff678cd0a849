// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var statusValues = map[string][]string{
	"client":    {"active", "inactive"},
	"project":   {"active", "on_hold", "completed"},
	"milestone": {"pending", "in_progress", "completed"},
	"invoice":   {"draft", "sent", "paid", "overdue"},
	"access":    {"private", "shared", "public"},
}

// ValidStatus reports whether value is a known status for the given kind.
func ValidStatus(kind, value string) bool {
	for _, v := range statusValues[kind] {
		if v == value {
			return true
		}
	}
	return false
}
