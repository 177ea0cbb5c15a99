package repository

import (
	"context"
	"database/sql"

	"github.com/velobund/bicycle-handout/internal/model"
)

// InvitationRepo provides persistence for invitations.  The UNIQUE
// (candidate_id, event_id) constraint makes a double invitation to the
// same event a storage-level impossibility, not just a handler check.
type InvitationRepo struct {
	db *sql.DB
}

// NewInvitationRepo returns an InvitationRepo bound to the database.
func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{db: db} }

// Create inserts an invitation linking a candidate to an event.
// Returns ErrAlreadyInvited when the pair already exists.
func (r *InvitationRepo) Create(ctx context.Context, candidateID, eventID uint64) (model.Invitation, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO invitations (candidate_id, event_id) VALUES (?,?)",
		candidateID, eventID)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Invitation{}, ErrAlreadyInvited
		}
		return model.Invitation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Invitation{}, err
	}
	var inv model.Invitation
	err = r.db.QueryRowContext(ctx,
		"SELECT id, candidate_id, event_id, time_of_invitation FROM invitations WHERE id=?", id).
		Scan(&inv.ID, &inv.CandidateID, &inv.EventID, &inv.TimeOfInvitation)
	return inv, err
}

// ListByCandidate returns a candidate's invitations, oldest first.
func (r *InvitationRepo) ListByCandidate(ctx context.Context, candidateID uint64) ([]model.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, candidate_id, event_id, time_of_invitation FROM invitations WHERE candidate_id=? ORDER BY time_of_invitation",
		candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvitations(rows)
}

// CountByCandidate returns how many invitations a candidate has ever
// received, across all events.
func (r *InvitationRepo) CountByCandidate(ctx context.Context, candidateID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM invitations WHERE candidate_id=?", candidateID).Scan(&n)
	return n, err
}

// InvitedCandidate pairs a candidate with the registration kind they
// were invited under.  Used by the per-event grouping view.
type InvitedCandidate struct {
	Candidate   model.Candidate   `json:"candidate"`
	BicycleKind model.BicycleKind `json:"bicycle_kind"`
}

// ListCandidatesByEvent returns every candidate invited to an event
// together with their registered kind, in invitation order.  Candidates
// without a registration (manually created by staff, then manually
// invited) come back with kind 0 and are grouped as unregistered.
func (r *InvitationRepo) ListCandidatesByEvent(ctx context.Context, eventID uint64) ([]InvitedCandidate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.first_name, c.last_name, c.date_of_birth, c.created_at, c.updated_at,
		        COALESCE(r.bicycle_kind, 0)
		 FROM invitations i
		 JOIN candidates c ON c.id = i.candidate_id
		 LEFT JOIN registrations r ON r.candidate_id = c.id
		 WHERE i.event_id = ?
		 ORDER BY i.time_of_invitation, c.id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []InvitedCandidate
	for rows.Next() {
		var ic InvitedCandidate
		if err := rows.Scan(&ic.Candidate.ID, &ic.Candidate.FirstName, &ic.Candidate.LastName,
			&ic.Candidate.DateOfBirth, &ic.Candidate.CreatedAt, &ic.Candidate.UpdatedAt,
			&ic.BicycleKind); err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}

// EventsNotInvitedTo returns the events a candidate has no invitation
// for yet, ordered by due date.  Staff pick from this list when
// inviting a candidate manually.
func (r *InvitationRepo) EventsNotInvitedTo(ctx context.Context, candidateID uint64) ([]model.HandoutEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.due_date, e.created_at
		 FROM handout_events e
		 WHERE e.id NOT IN (SELECT event_id FROM invitations WHERE candidate_id=?)
		 ORDER BY e.due_date`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.HandoutEvent
	for rows.Next() {
		var ev model.HandoutEvent
		if err := rows.Scan(&ev.ID, &ev.DueDate, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func collectInvitations(rows *sql.Rows) ([]model.Invitation, error) {
	var out []model.Invitation
	for rows.Next() {
		var inv model.Invitation
		if err := rows.Scan(&inv.ID, &inv.CandidateID, &inv.EventID, &inv.TimeOfInvitation); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
