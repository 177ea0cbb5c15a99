package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/velobund/bicycle-handout/internal/model"
)

// EventRepo provides persistence for handout events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts a handout event and returns the stored row.
func (r *EventRepo) Create(ctx context.Context, dueDate time.Time) (model.HandoutEvent, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO handout_events (due_date) VALUES (?)", dueDate.UTC())
	if err != nil {
		return model.HandoutEvent{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.HandoutEvent{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches an event by id.  Returns ErrNotFound when absent.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.HandoutEvent, error) {
	var ev model.HandoutEvent
	err := r.db.QueryRowContext(ctx,
		"SELECT id, due_date, created_at FROM handout_events WHERE id=?", id).
		Scan(&ev.ID, &ev.DueDate, &ev.CreatedAt)
	if err == sql.ErrNoRows {
		return model.HandoutEvent{}, ErrNotFound
	}
	return ev, err
}

// List returns all events ordered by due date.
func (r *EventRepo) List(ctx context.Context) ([]model.HandoutEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, due_date, created_at FROM handout_events ORDER BY due_date")
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

// ExistsAt reports whether an event with exactly this due date already
// exists.  The check is advisory; the column carries no constraint.
func (r *EventRepo) ExistsAt(ctx context.Context, dueDate time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM handout_events WHERE due_date=?", dueDate.UTC()).Scan(&n)
	return n > 0, err
}
