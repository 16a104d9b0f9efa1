// Package contacts loads contact lists from the user's address book and from
// the bundled sample list, and keeps them sorted for display.
package contacts

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

var (
	// ErrAccessDenied is returned when the address book cannot be read.
	ErrAccessDenied = errors.New("address book access denied")
)

// Contact is a person with a first and last name and an optional email address.
type Contact struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"emailAdress,omitempty"`
}

// New builds a Contact whose ID is derived from its fields.
func New(firstName, lastName, email string) Contact {
	return Contact{
		ID:        contactID(firstName, lastName, email),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

func contactID(firstName, lastName, email string) uint64 {
	h := sha256.New()
	for _, s := range []string{firstName, lastName, email} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// Source selects which list the user is browsing.
type Source int

const (
	Sample Source = iota
	Phone
)

// Sources lists every Source in display order.
var Sources = []Source{Phone, Sample}

func (s Source) String() string {
	if s == Phone {
		return "Phone contacts"
	}
	return "Sample contacts"
}

// Next cycles to the other source.
func (s Source) Next() Source {
	if s == Phone {
		return Sample
	}
	return Phone
}
