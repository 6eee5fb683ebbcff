package domain

import "time"

// User represents a registered account. PasswordHash is the bcrypt digest
// of the password; the plaintext is never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
