package waitlist

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/repository"
)

// EligibleSource supplies the candidates a random draw may pick from in
// a given kind: registered for that kind, no bicycle, and never invited
// to any event.
type EligibleSource interface {
	EligibleCandidateIDs(ctx context.Context, kind model.BicycleKind) ([]uint64, error)
}

// InvitationSink persists a winner's invitation.
type InvitationSink interface {
	Create(ctx context.Context, candidateID, eventID uint64) (model.Invitation, error)
}

// Allocator distributes staff-requested invitation slots per kind by
// unweighted random sampling without replacement.  The draw is a fresh
// uniform sample on every invocation; fairness, not reproducibility, is
// the goal, so there is no seed.
type Allocator struct {
	Eligible    EligibleSource
	Invitations InvitationSink
}

// NewAllocator returns an Allocator over the given stores.
func NewAllocator(eligible EligibleSource, invitations InvitationSink) *Allocator {
	return &Allocator{Eligible: eligible, Invitations: invitations}
}

// Allocate draws winners for one event.  For each kind independently it
// samples min(requested, pool size) distinct candidates and creates one
// invitation per winner.  Zero requested slots or an empty pool creates
// nothing.  The return value maps each kind to the number of
// invitations actually created.
//
// The eligibility read and the inserts are not wrapped in a
// transaction; two staff members allocating simultaneously can race.
// When both draw the same candidate the invitations table's UNIQUE
// constraint rejects the loser, and that winner slot is simply dropped.
func (a *Allocator) Allocate(ctx context.Context, eventID uint64, slots map[model.BicycleKind]int) (map[model.BicycleKind]int, error) {
	invited := make(map[model.BicycleKind]int, len(slots))
	for _, kind := range model.AllKinds() {
		want := slots[kind]
		if want <= 0 {
			continue
		}
		pool, err := a.Eligible.EligibleCandidateIDs(ctx, kind)
		if err != nil {
			return invited, err
		}
		k := want
		if k > len(pool) {
			k = len(pool)
		}
		if k == 0 {
			continue
		}
		for _, idx := range rand.Perm(len(pool))[:k] {
			_, err := a.Invitations.Create(ctx, pool[idx], eventID)
			if err != nil {
				if errors.Is(err, repository.ErrAlreadyInvited) {
					continue // lost a concurrent draw for this candidate
				}
				return invited, err
			}
			invited[kind]++
		}
	}
	return invited, nil
}
