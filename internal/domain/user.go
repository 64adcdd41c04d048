package domain

import "time"

// User represents a journal account. Emails are unique and stored as
// provided (case-sensitive).
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
