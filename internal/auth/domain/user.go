package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the mutable user fields. A nil PasswordHash keeps the stored hash.
type ProfileUpdate struct {
	Username     string
	Email        string
	PasswordHash *string
}
