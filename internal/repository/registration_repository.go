package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/utils"
)

// RegistrationRepo provides persistence for registrations.  The opaque
// identifier is the primary key, so identifier uniqueness is enforced
// by the database rather than hoped for; candidate_id carries a UNIQUE
// constraint giving the 1:1 candidate-registration relationship.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a RegistrationRepo bound to the database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationCols = "identifier, candidate_id, bicycle_kind, email, phone_number, email_validated, time_of_email_validation, time_of_registration"

func scanRegistration(row interface{ Scan(...any) error }) (model.Registration, error) {
	var (
		reg       model.Registration
		validated sql.NullTime
	)
	err := row.Scan(&reg.Identifier, &reg.CandidateID, &reg.BicycleKind, &reg.Email,
		&reg.PhoneNumber, &reg.EmailValidated, &validated, &reg.TimeOfRegistration)
	if validated.Valid {
		t := validated.Time
		reg.TimeOfEmailValidation = &t
	}
	return reg, err
}

// Create inserts a registration with a freshly generated identifier and
// returns the stored row.  An identifier collision is astronomically
// unlikely but cheap to survive, so the insert retries with a new token
// a few times before giving up.  A duplicate candidate_id means the
// candidate is already registered and is reported as
// ErrAlreadyRegistered.
func (r *RegistrationRepo) Create(ctx context.Context, candidateID uint64, kind model.BicycleKind, email, phone string) (model.Registration, error) {
	for attempt := 0; attempt < 3; attempt++ {
		identifier, err := utils.NewIdentifier()
		if err != nil {
			return model.Registration{}, err
		}
		_, err = r.db.ExecContext(ctx,
			"INSERT INTO registrations (identifier, candidate_id, bicycle_kind, email, phone_number) VALUES (?,?,?,?,?)",
			identifier, candidateID, kind, email, phone)
		if err == nil {
			return r.GetByIdentifier(ctx, identifier)
		}
		if isDuplicateKey(err) {
			if strings.Contains(err.Error(), "uq_registrations_candidate") {
				return model.Registration{}, ErrAlreadyRegistered
			}
			continue // identifier collision, draw again
		}
		return model.Registration{}, err
	}
	return model.Registration{}, ErrAlreadyRegistered
}

// GetByIdentifier fetches a registration by its opaque identifier.
// Returns ErrNotFound when no such identifier exists.
func (r *RegistrationRepo) GetByIdentifier(ctx context.Context, identifier string) (model.Registration, error) {
	reg, err := scanRegistration(r.db.QueryRowContext(ctx,
		"SELECT "+registrationCols+" FROM registrations WHERE identifier=?", identifier))
	if err == sql.ErrNoRows {
		return model.Registration{}, ErrNotFound
	}
	return reg, err
}

// GetByCandidate fetches the registration belonging to a candidate.
func (r *RegistrationRepo) GetByCandidate(ctx context.Context, candidateID uint64) (model.Registration, error) {
	reg, err := scanRegistration(r.db.QueryRowContext(ctx,
		"SELECT "+registrationCols+" FROM registrations WHERE candidate_id=?", candidateID))
	if err == sql.ErrNoRows {
		return model.Registration{}, ErrNotFound
	}
	return reg, err
}

// LineEntries returns every registration of the given kind in creation
// order, each annotated with whether its candidate currently holds a
// bicycle.  This is the input to the waiting-line ranker.
func (r *RegistrationRepo) LineEntries(ctx context.Context, kind model.BicycleKind) ([]model.LineEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.identifier, r.candidate_id, b.id IS NOT NULL
		 FROM registrations r
		 LEFT JOIN bicycles b ON b.candidate_id = r.candidate_id
		 WHERE r.bicycle_kind = ?
		 ORDER BY r.time_of_registration, r.candidate_id`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.LineEntry
	for rows.Next() {
		var e model.LineEntry
		if err := rows.Scan(&e.Identifier, &e.CandidateID, &e.HasBicycle); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EligibleCandidateIDs returns the candidates eligible for a random
// invitation draw in the given kind: registered for that kind, not
// holding a bicycle, and never invited to any event.  The any-event
// rule is deliberate: one invitation uses up a candidate's chance in
// the draw even if they did not attend.
func (r *RegistrationRepo) EligibleCandidateIDs(ctx context.Context, kind model.BicycleKind) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.candidate_id
		 FROM registrations r
		 LEFT JOIN bicycles b ON b.candidate_id = r.candidate_id
		 LEFT JOIN invitations i ON i.candidate_id = r.candidate_id
		 WHERE r.bicycle_kind = ? AND b.id IS NULL AND i.id IS NULL
		 ORDER BY r.time_of_registration, r.candidate_id`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MarkEmailValidated flips email_validated to true and stamps the
// validation time, but only on the first call: the WHERE clause leaves
// an already-validated row untouched so the original timestamp
// survives.  Returns true when this call performed the flip.
func (r *RegistrationRepo) MarkEmailValidated(ctx context.Context, identifier string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE registrations SET email_validated=1, time_of_email_validation=NOW() WHERE identifier=? AND email_validated=0",
		identifier)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
