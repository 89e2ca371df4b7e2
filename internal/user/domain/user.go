package domain

import "time"

// User is the core user entity. ID is assigned by the store on insert.
// Login and email are unique across all users; the uniqueness pre-check and the
// store's unique constraints together enforce that.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser holds the validated fields for a user insert. Password is opaque to
// this service and stored as given.
type NewUser struct {
	Name     string
	Login    string
	Email    string
	Password string
}
