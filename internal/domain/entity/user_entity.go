package entity

import (
	"time"
)

// Address is a value object owned exclusively by a User.
// It has no identity of its own and is replaced wholesale on update.
type Address struct {
	PostalCode     string
	Street         string
	Neighborhood   string
	City           string
	State          string
	AdditionalInfo string
	Number         string
}

// User is the aggregate root for the user domain.
// Every user owns exactly one Address; the address is created and
// deleted together with its user.
//
// ID is assigned once at creation and never changes. CreatedAt is set
// once; UpdatedAt advances on every successful mutation, so
// CreatedAt <= UpdatedAt always holds.
type User struct {
	ID        string
	Name      string
	Email     string
	Birthday  time.Time
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}
