package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MaxSpeechLength is the longest text accepted for speech
const MaxSpeechLength = 200

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePIN checks a teacher PIN: 4 to 8 digits
func ValidatePIN(pin string) error {
	if pin == "" {
		return ValidationError{Field: "pin", Message: "pin is required"}
	}
	if len(pin) < 4 || len(pin) > 8 {
		return ValidationError{Field: "pin", Message: "pin must be 4 to 8 digits"}
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ValidationError{Field: "pin", Message: "pin must contain only digits"}
		}
	}
	return nil
}

// ValidateSpeechText checks text sent for speech
func ValidateSpeechText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "text", Message: "text is required"}
	}
	if utf8.RuneCountInString(text) > MaxSpeechLength {
		return ValidationError{Field: "text", Message: fmt.Sprintf("text must be at most %d characters", MaxSpeechLength)}
	}
	return nil
}
