package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Customer belongs to exactly one user. Requests from other users never see
// it; the owner id stays out of the JSON shape.
type Customer struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	maxNameLen  = 255
	maxEmailLen = 254
	maxPhoneLen = 50
)

// CustomerCreateRequest is the input for creating a customer.
type CustomerCreateRequest struct {
	Name  string
	Email string
	Phone string
}

func (p CustomerCreateRequest) Validate() error {
	ve := &ValidationError{}
	validateCustomerName(ve, p.Name)
	validateCustomerEmail(ve, p.Email)
	validateCustomerPhone(ve, p.Phone)
	return ve.Err()
}

// CustomerUpdateRequest carries a partial update; nil means "leave as is".
type CustomerUpdateRequest struct {
	Name  *string
	Email *string
	Phone *string
}

func (p CustomerUpdateRequest) Validate() error {
	ve := &ValidationError{}
	if p.Name != nil {
		validateCustomerName(ve, *p.Name)
	}
	if p.Email != nil {
		validateCustomerEmail(ve, *p.Email)
	}
	if p.Phone != nil {
		validateCustomerPhone(ve, *p.Phone)
	}
	return ve.Err()
}

func validateCustomerName(ve *ValidationError, name string) {
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "This field is required.")
		return
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		ve.Add("name", "Ensure this field has no more than 255 characters.")
	}
}

func validateCustomerEmail(ve *ValidationError, email string) {
	if email == "" {
		return
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		ve.Add("email", "Ensure this field has no more than 254 characters.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		ve.Add("email", "Enter a valid email address.")
	}
}

func validateCustomerPhone(ve *ValidationError, phone string) {
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		ve.Add("phone", "Ensure this field has no more than 50 characters.")
	}
}
