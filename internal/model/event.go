package model

import "time"

// HandoutEvent is a scheduled occasion at which invited candidates
// receive bicycles.  Due dates are checked for uniqueness when staff
// create an event, but the check is advisory only and not backed by a
// storage constraint.
type HandoutEvent struct {
	ID        uint64    `json:"id"`         // handout_events.id
	DueDate   time.Time `json:"due_date"`   // handout_events.due_date
	CreatedAt time.Time `json:"created_at"` // handout_events.created_at
}
