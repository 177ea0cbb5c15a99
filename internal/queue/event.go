// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a public registration
// succeeds.  It carries everything the notification consumer needs to
// compose the confirmation email, in particular the status URL with the
// opaque identifier the registrant uses for self-service lookups.
type RegistrationConfirmedEvent struct {
	MessageID    string `json:"message_id"`
	Identifier   string `json:"identifier"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	BicycleKind  string `json:"bicycle_kind"`
	StatusURL    string `json:"status_url"`
	RegisteredAt string `json:"registered_at"`
}
