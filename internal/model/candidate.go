package model

import "time"

// Candidate is a person hoping to receive a bicycle.  A candidate may
// have at most one Registration and at most one Bicycle; both are
// separate records keyed by candidate ID.  Identity is presumed unique
// by the (first name, last name, date of birth) triple.  That triple is
// checked when staff create or modify candidates but is deliberately
// not enforced by the storage layer.
//
// Fields:
//  ID          – primary key identifier.
//  FirstName   – given name.
//  LastName    – family name.
//  DateOfBirth – date of birth (date only, stored at midnight UTC).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Candidate struct {
	ID          uint64    `json:"id"`            // candidates.id
	FirstName   string    `json:"first_name"`    // candidates.first_name
	LastName    string    `json:"last_name"`     // candidates.last_name
	DateOfBirth time.Time `json:"date_of_birth"` // candidates.date_of_birth
	CreatedAt   time.Time `json:"created_at"`    // candidates.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // candidates.updated_at
}
