package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phonePattern  = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	apiKeyPattern = regexp.MustCompile(`^pk_(test|live)_([a-z0-9]{32})$`)
)

// ValidatePhone cleans a phone number to E.164 form and validates it.
// The field name is included in the error so callers can surface it as-is.
func ValidatePhone(phone, fieldName string) (string, error) {
	if phone == "" {
		return "", nil
	}

	var b strings.Builder
	for _, ch := range phone {
		if ch == '+' || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		}
	}
	clean := b.String()
	if !strings.HasPrefix(clean, "+") {
		clean = "+" + clean
	}

	if !phonePattern.MatchString(clean) {
		return "", fmt.Errorf("%w: %s must be in E.164 format: \"+\" followed by country code and number, e.g. +34612345678", ErrInvalidInput, fieldName)
	}
	return clean, nil
}

// ValidateEmail trims and validates an email address.
func ValidateEmail(email, fieldName string) (string, error) {
	if email == "" {
		return "", nil
	}

	clean := strings.TrimSpace(email)
	if !emailPattern.MatchString(clean) {
		return "", fmt.Errorf("%w: %s must be a valid email address, e.g. john.doe@example.com", ErrInvalidInput, fieldName)
	}
	return clean, nil
}

// ValidateAPIKey checks the MONEI publishable key format.
func ValidateAPIKey(key string) error {
	if !apiKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: API key must be pk_test_ or pk_live_ followed by 32 characters", ErrInvalidInput)
	}
	return nil
}
