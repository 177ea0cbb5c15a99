package repository

import (
	"context"
	"database/sql"

	"github.com/velobund/bicycle-handout/internal/model"
)

// BicycleRepo provides persistence for handed-over bicycles.  The
// UNIQUE candidate_id constraint enforces "at most one bicycle per
// candidate" in storage; deleting a row is what returns a candidate to
// the waiting line.
type BicycleRepo struct {
	db *sql.DB
}

// NewBicycleRepo returns a BicycleRepo bound to the given database.
func NewBicycleRepo(db *sql.DB) *BicycleRepo { return &BicycleRepo{db: db} }

const bicycleCols = "id, candidate_id, bicycle_number, lock_combination, color, brand, general_remarks, created_at"

func scanBicycle(row interface{ Scan(...any) error }) (model.Bicycle, error) {
	var b model.Bicycle
	err := row.Scan(&b.ID, &b.CandidateID, &b.BicycleNumber, &b.LockCombination,
		&b.Color, &b.Brand, &b.GeneralRemarks, &b.CreatedAt)
	return b, err
}

// Create records a handover.  Returns ErrHasBicycle when the candidate
// already holds one.
func (r *BicycleRepo) Create(ctx context.Context, b model.Bicycle) (model.Bicycle, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bicycles (candidate_id, bicycle_number, lock_combination, color, brand, general_remarks) VALUES (?,?,?,?,?,?)",
		b.CandidateID, b.BicycleNumber, b.LockCombination, b.Color, b.Brand, b.GeneralRemarks)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Bicycle{}, ErrHasBicycle
		}
		return model.Bicycle{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Bicycle{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a bicycle by id.  Returns ErrNotFound when absent.
func (r *BicycleRepo) GetByID(ctx context.Context, id uint64) (model.Bicycle, error) {
	b, err := scanBicycle(r.db.QueryRowContext(ctx,
		"SELECT "+bicycleCols+" FROM bicycles WHERE id=?", id))
	if err == sql.ErrNoRows {
		return model.Bicycle{}, ErrNotFound
	}
	return b, err
}

// GetByCandidate fetches the bicycle currently held by a candidate.
// Returns ErrNoBicycle when the candidate holds none.
func (r *BicycleRepo) GetByCandidate(ctx context.Context, candidateID uint64) (model.Bicycle, error) {
	b, err := scanBicycle(r.db.QueryRowContext(ctx,
		"SELECT "+bicycleCols+" FROM bicycles WHERE candidate_id=?", candidateID))
	if err == sql.ErrNoRows {
		return model.Bicycle{}, ErrNoBicycle
	}
	return b, err
}

// DeleteByCandidate records a refund by physically deleting the
// candidate's bicycle row.  Returns ErrNoBicycle when there is nothing
// to refund.
func (r *BicycleRepo) DeleteByCandidate(ctx context.Context, candidateID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bicycles WHERE candidate_id=?", candidateID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoBicycle
	}
	return nil
}

// List returns one page of bicycles in handover order plus the total
// row count for pagination.  page is 1-based.
func (r *BicycleRepo) List(ctx context.Context, page, perPage int) ([]model.Bicycle, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bicycles").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bicycleCols+" FROM bicycles ORDER BY id LIMIT ? OFFSET ?",
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Bicycle, 0, perPage)
	for rows.Next() {
		b, err := scanBicycle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}
