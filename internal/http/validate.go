package httpx

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	dateLayout        = "2006-01-02"
)

// credentialsInput is the parsed body for both auth endpoints.
type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// createEntryInput is the parsed body for entry creation.
type createEntryInput struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// updateEntryInput is the parsed body for entry updates.
type updateEntryInput struct {
	Content string `json:"content"`
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validateRegister collects every violated field for registration.
func validateRegister(in credentialsInput) []FieldError {
	var fields []FieldError
	if !validEmail(in.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(in.Password) < minPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	return fields
}

// validateLogin checks the email shape only. The password, empty or not,
// goes to the credential check so every login failure looks the same.
func validateLogin(in credentialsInput) []FieldError {
	var fields []FieldError
	if !validEmail(in.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	return fields
}

// parseEntryDate accepts a calendar date or a full timestamp; either way
// only the date component is kept.
func parseEntryDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// validateCreateEntry collects every violated field for entry creation.
func validateCreateEntry(in createEntryInput) (time.Time, []FieldError) {
	var fields []FieldError
	date, ok := parseEntryDate(in.Date)
	if !ok {
		fields = append(fields, FieldError{Field: "date", Message: "must be a valid ISO-8601 date"})
	}
	if in.Content == "" {
		fields = append(fields, FieldError{Field: "content", Message: "is required"})
	}
	return date, fields
}

// validEntryID rejects malformed identifiers before any store access.
func validEntryID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
