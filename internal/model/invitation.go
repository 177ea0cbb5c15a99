package model

import "time"

// Invitation links a candidate to a handout event they are invited to.
// A candidate must not be invited to the same event twice; the pair
// (candidate_id, event_id) carries a UNIQUE constraint.
type Invitation struct {
	ID               uint64    `json:"id"`                 // invitations.id
	CandidateID      uint64    `json:"candidate_id"`       // invitations.candidate_id
	EventID          uint64    `json:"event_id"`           // invitations.event_id
	TimeOfInvitation time.Time `json:"time_of_invitation"` // invitations.time_of_invitation
}
