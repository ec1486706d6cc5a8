package domain

import (
	"time"
)

// DefaultDocumentType is assumed when a person is created without one.
const DefaultDocumentType = "DNI"

// Person is an identity/profile record independent of login concerns.
type Person struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasDifferentDocumentNumber reports whether this person carries a document
// number that differs from the given one. An unset document number never
// counts as different; the comparison gates document re-validation on update.
func (p *Person) HasDifferentDocumentNumber(documentNumber string) bool {
	return p.DocumentNumber != "" && p.DocumentNumber != documentNumber
}
