// Package repository implements the data access layer on top of
// database/sql.  This file defines sentinel errors reused across the
// repositories so handlers can map failure scenarios onto HTTP status
// codes without string matching: ErrNotFound becomes 404, the conflict
// family becomes 409.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a staff account with the same email
// already exists.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyInvited is returned when a candidate already holds an
// invitation to the event in question.  Backed by the UNIQUE
// (candidate_id, event_id) constraint on invitations.
var ErrAlreadyInvited = errors.New("candidate already invited to this event")

// ErrHasBicycle is returned when a handover is attempted for a
// candidate who already holds a bicycle.  Backed by the UNIQUE
// candidate_id constraint on bicycles.
var ErrHasBicycle = errors.New("candidate already has a bicycle")

// ErrNoBicycle is returned when a refund is attempted for a candidate
// who holds no bicycle.
var ErrNoBicycle = errors.New("candidate does not have a bicycle")

// ErrAlreadyRegistered is returned when a second registration is
// created for the same candidate.  Backed by the UNIQUE candidate_id
// constraint on registrations.
var ErrAlreadyRegistered = errors.New("candidate already has a registration")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062).  The driver does not expose a typed error for this, so
// the repositories share this single string check.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
