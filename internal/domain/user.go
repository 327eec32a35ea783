package domain

import "time"

// User represents a rider registered with the service.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// NewUser validates the registration fields and returns a user without an identifier.
func NewUser(name, email, phone string) (*User, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if phone == "" {
		return nil, ErrMissingPhone
	}
	return &User{Name: name, Email: email, Phone: phone}, nil
}
