package models

import "time"

// User is a stored admin credential record. The hash never leaves the server.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
