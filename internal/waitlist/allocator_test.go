package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/repository"
)

// fakeEligible serves fixed per-kind pools and, like the real query,
// excludes anyone already invited.
type fakeEligible struct {
	pools map[model.BicycleKind][]uint64
	sink  *fakeInvitations
}

func (f *fakeEligible) EligibleCandidateIDs(_ context.Context, kind model.BicycleKind) ([]uint64, error) {
	var out []uint64
	for _, id := range f.pools[kind] {
		if f.sink != nil && f.sink.invitedAnywhere(id) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

// fakeInvitations enforces the UNIQUE (candidate, event) constraint the
// way the invitations table does.
type fakeInvitations struct {
	created map[[2]uint64]bool
}

func newFakeInvitations() *fakeInvitations {
	return &fakeInvitations{created: map[[2]uint64]bool{}}
}

func (f *fakeInvitations) Create(_ context.Context, candidateID, eventID uint64) (model.Invitation, error) {
	key := [2]uint64{candidateID, eventID}
	if f.created[key] {
		return model.Invitation{}, repository.ErrAlreadyInvited
	}
	f.created[key] = true
	return model.Invitation{CandidateID: candidateID, EventID: eventID}, nil
}

func (f *fakeInvitations) invitedAnywhere(candidateID uint64) bool {
	for key := range f.created {
		if key[0] == candidateID {
			return true
		}
	}
	return false
}

func (f *fakeInvitations) forEvent(eventID uint64) []uint64 {
	var out []uint64
	for key := range f.created {
		if key[1] == eventID {
			out = append(out, key[0])
		}
	}
	return out
}

func TestAllocateDrawsRequestedPerKind(t *testing.T) {
	sink := newFakeInvitations()
	alloc := NewAllocator(&fakeEligible{
		pools: map[model.BicycleKind][]uint64{
			model.KindMens:   {1, 2, 3, 4, 5},
			model.KindLadies: {6, 7},
		},
		sink: sink,
	}, sink)

	invited, err := alloc.Allocate(context.Background(), 10, map[model.BicycleKind]int{
		model.KindMens:   3,
		model.KindLadies: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, invited[model.KindMens])
	assert.Equal(t, 1, invited[model.KindLadies])
	assert.Zero(t, invited[model.KindChildSmall])
	assert.Len(t, sink.forEvent(10), 4)
}

func TestAllocateOverRequestedInvitesWholePool(t *testing.T) {
	sink := newFakeInvitations()
	alloc := NewAllocator(&fakeEligible{
		pools: map[model.BicycleKind][]uint64{model.KindChildBig: {11, 12, 13}},
		sink:  sink,
	}, sink)

	invited, err := alloc.Allocate(context.Background(), 20, map[model.BicycleKind]int{
		model.KindChildBig: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, invited[model.KindChildBig])
	assert.ElementsMatch(t, []uint64{11, 12, 13}, sink.forEvent(20))
}

func TestAllocateZeroSlotsOrEmptyPool(t *testing.T) {
	sink := newFakeInvitations()
	alloc := NewAllocator(&fakeEligible{
		pools: map[model.BicycleKind][]uint64{model.KindMens: {1, 2}},
		sink:  sink,
	}, sink)

	invited, err := alloc.Allocate(context.Background(), 30, map[model.BicycleKind]int{
		model.KindMens:   0,
		model.KindLadies: 5, // pool is empty
	})
	require.NoError(t, err)
	assert.Empty(t, sink.created)
	assert.Zero(t, invited[model.KindMens])
	assert.Zero(t, invited[model.KindLadies])
}

func TestAllocateNeverDuplicatesCandidateEventPair(t *testing.T) {
	sink := newFakeInvitations()
	alloc := NewAllocator(&fakeEligible{
		pools: map[model.BicycleKind][]uint64{model.KindMens: {1, 2, 3, 4, 5, 6, 7, 8}},
		sink:  sink,
	}, sink)

	// Run many draws against the same event; the created map would
	// reject a duplicate pair, and eligibility shrinks as candidates
	// use up their one chance.
	for i := 0; i < 10; i++ {
		_, err := alloc.Allocate(context.Background(), 40, map[model.BicycleKind]int{model.KindMens: 2})
		require.NoError(t, err)
	}
	assert.Len(t, sink.forEvent(40), 8, "every candidate invited exactly once")
}

func TestAllocatePreviouslyInvitedAreExcluded(t *testing.T) {
	sink := newFakeInvitations()
	// Candidate 2 was invited to an earlier event and never attended;
	// one invitation uses up the chance for good.
	_, err := sink.Create(context.Background(), 2, 1)
	require.NoError(t, err)

	alloc := NewAllocator(&fakeEligible{
		pools: map[model.BicycleKind][]uint64{model.KindLadies: {1, 2, 3}},
		sink:  sink,
	}, sink)

	invited, err := alloc.Allocate(context.Background(), 50, map[model.BicycleKind]int{model.KindLadies: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, invited[model.KindLadies])
	assert.ElementsMatch(t, []uint64{1, 3}, sink.forEvent(50))
}
