package model

import (
	"net/mail"
	"time"
	"unicode/utf8"
)

// User is an account holder. The password hash never leaves the repository
// layer through this type's JSON shape.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

const minPasswordLen = 8

// RegisterRequest is the input for creating a user account.
type RegisterRequest struct {
	Email    string
	Password string
}

func (p RegisterRequest) Validate() error {
	ve := &ValidationError{}
	if p.Email == "" {
		ve.Add("email", "This field is required.")
	} else if utf8.RuneCountInString(p.Email) > maxEmailLen {
		ve.Add("email", "Ensure this field has no more than 254 characters.")
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		ve.Add("email", "Enter a valid email address.")
	}

	if p.Password == "" {
		ve.Add("password", "This field is required.")
	} else if utf8.RuneCountInString(p.Password) < minPasswordLen {
		ve.Add("password", "Ensure this field has at least 8 characters.")
	}
	return ve.Err()
}
