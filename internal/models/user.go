package models

import "time"

// User represents an account that can organize events.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
