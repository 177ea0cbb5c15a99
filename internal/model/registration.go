package model

import "time"

// IdentifierLength is the length of the opaque lookup identifier handed
// to a registrant.  The identifier doubles as the registration's primary
// key, so uniqueness is enforced by the storage layer.
const IdentifierLength = 20

// Registration captures a candidate's interest in a bicycle of a
// particular kind.  Exactly one registration exists per candidate
// (candidate_id carries a UNIQUE constraint).  The opaque Identifier is
// an unguessable token that lets the registrant look up their position
// in line without logging in; the first such lookup validates the email
// address on file.
//
// Fields:
//  Identifier            – 20-char opaque token, primary key.
//  CandidateID           – owning candidate (1:1).
//  BicycleKind           – requested category, one of the four kinds.
//  Email                 – contact email (may be empty when phone is set).
//  PhoneNumber           – contact phone (may be empty when email is set).
//  EmailValidated        – flips false→true on first status lookup.
//  TimeOfEmailValidation – stamped once, when EmailValidated flips.
//  TimeOfRegistration    – creation time; defines the waiting-line order.
type Registration struct {
	Identifier            string      `json:"identifier"`                        // registrations.identifier
	CandidateID           uint64      `json:"candidate_id"`                      // registrations.candidate_id
	BicycleKind           BicycleKind `json:"bicycle_kind"`                      // registrations.bicycle_kind
	Email                 string      `json:"email,omitempty"`                   // registrations.email
	PhoneNumber           string      `json:"phone_number,omitempty"`            // registrations.phone_number
	EmailValidated        bool        `json:"email_validated"`                   // registrations.email_validated
	TimeOfEmailValidation *time.Time  `json:"time_of_email_validation,omitempty"` // registrations.time_of_email_validation (nullable)
	TimeOfRegistration    time.Time   `json:"time_of_registration"`              // registrations.time_of_registration
}
