package repository

import (
	"context"
	"database/sql"

	"github.com/velobund/bicycle-handout/internal/model"
)

// CandidateRepo provides CRUD operations for candidates.  A candidate
// row carries only the person's identity; registration, invitations and
// bicycle possession are separate records keyed by candidate ID.
type CandidateRepo struct {
	db *sql.DB
}

// NewCandidateRepo returns a CandidateRepo bound to the given database.
func NewCandidateRepo(db *sql.DB) *CandidateRepo { return &CandidateRepo{db: db} }

const candidateCols = "id, first_name, last_name, date_of_birth, created_at, updated_at"

func scanCandidate(row interface{ Scan(...any) error }) (model.Candidate, error) {
	var c model.Candidate
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a candidate and returns the stored row.
func (r *CandidateRepo) Create(ctx context.Context, firstName, lastName string, dateOfBirth string) (model.Candidate, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO candidates (first_name, last_name, date_of_birth) VALUES (?,?,?)",
		firstName, lastName, dateOfBirth)
	if err != nil {
		return model.Candidate{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Candidate{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a candidate by id.  Returns ErrNotFound when absent.
func (r *CandidateRepo) GetByID(ctx context.Context, id uint64) (model.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx,
		"SELECT "+candidateCols+" FROM candidates WHERE id=?", id))
	if err == sql.ErrNoRows {
		return model.Candidate{}, ErrNotFound
	}
	return c, err
}

// Update rewrites a candidate's identity fields.  Returns ErrNotFound
// when no row with this id exists.
func (r *CandidateRepo) Update(ctx context.Context, id uint64, firstName, lastName string, dateOfBirth string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE candidates SET first_name=?, last_name=?, date_of_birth=? WHERE id=?",
		firstName, lastName, dateOfBirth, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either absent or unchanged; distinguish with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a candidate.  Registration, invitations and bicycle
// rows go with it via ON DELETE CASCADE.
func (r *CandidateRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM candidates WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of candidates in creation order plus the total
// row count for pagination.  page is 1-based.
func (r *CandidateRepo) List(ctx context.Context, page, perPage int) ([]model.Candidate, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+candidateCols+" FROM candidates ORDER BY id LIMIT ? OFFSET ?",
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Candidate, 0, perPage)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// CountMatching counts candidates with the same (first, last, date of
// birth) identity triple, excluding excludeID when non-zero.  Used for
// the advisory duplicate check on create and modify; the triple is not
// constrained in storage.
func (r *CandidateRepo) CountMatching(ctx context.Context, firstName, lastName, dateOfBirth string, excludeID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM candidates WHERE first_name=? AND last_name=? AND date_of_birth=? AND id<>?",
		firstName, lastName, dateOfBirth, excludeID).Scan(&n)
	return n, err
}

// CountWithoutBicycle returns the number of candidates not currently
// holding a bicycle.  This is the "total in line" figure shown on the
// thanks page and compared against the registration cap.
func (r *CandidateRepo) CountWithoutBicycle(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates c
		 LEFT JOIN bicycles b ON b.candidate_id = c.id
		 WHERE b.id IS NULL`).Scan(&n)
	return n, err
}
