package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobund/bicycle-handout/internal/model"
)

// fakeLineSource serves in-memory lines keyed by kind.
type fakeLineSource struct {
	lines map[model.BicycleKind][]model.LineEntry
}

func (f *fakeLineSource) LineEntries(_ context.Context, kind model.BicycleKind) ([]model.LineEntry, error) {
	return f.lines[kind], nil
}

func reg(identifier string, kind model.BicycleKind) model.Registration {
	return model.Registration{Identifier: identifier, BicycleKind: kind}
}

func TestPositionInLineCountsOnlyBicycleless(t *testing.T) {
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{
		model.KindMens: {
			{Identifier: "aaaa", CandidateID: 1, HasBicycle: false},
			{Identifier: "bbbb", CandidateID: 2, HasBicycle: true},
			{Identifier: "cccc", CandidateID: 3, HasBicycle: false},
			{Identifier: "dddd", CandidateID: 4, HasBicycle: false},
		},
	}}
	r := NewRanker(src)

	pos, err := r.PositionInLine(context.Background(), reg("aaaa", model.KindMens))
	require.NoError(t, err)
	assert.Equal(t, 1, pos, "first bicycle-less registration is number 1")

	pos, err = r.PositionInLine(context.Background(), reg("cccc", model.KindMens))
	require.NoError(t, err)
	assert.Equal(t, 2, pos, "candidate with a bicycle does not occupy a slot")

	pos, err = r.PositionInLine(context.Background(), reg("dddd", model.KindMens))
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
}

func TestPositionInLineStrictlyIncreasesWithCreationOrder(t *testing.T) {
	var entries []model.LineEntry
	ids := []string{"r1", "r2", "r3", "r4", "r5"}
	for i, id := range ids {
		entries = append(entries, model.LineEntry{Identifier: id, CandidateID: uint64(i + 1)})
	}
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{model.KindLadies: entries}}
	r := NewRanker(src)

	prev := 0
	for _, id := range ids {
		pos, err := r.PositionInLine(context.Background(), reg(id, model.KindLadies))
		require.NoError(t, err)
		assert.Greater(t, pos, prev)
		prev = pos
	}
}

func TestPositionInLineTargetWithBicycle(t *testing.T) {
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{
		model.KindChildSmall: {
			{Identifier: "r1", CandidateID: 1, HasBicycle: false},
			{Identifier: "r2", CandidateID: 2, HasBicycle: true},
		},
	}}
	r := NewRanker(src)

	// The target itself holds a bicycle: it is skipped from the
	// increment but the scan still terminates on it.
	pos, err := r.PositionInLine(context.Background(), reg("r2", model.KindChildSmall))
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestPositionInLineHandoverDoesNotMoveEarlierEntries(t *testing.T) {
	entries := []model.LineEntry{
		{Identifier: "r1", CandidateID: 1},
		{Identifier: "r2", CandidateID: 2},
		{Identifier: "r3", CandidateID: 3},
	}
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{model.KindMens: entries}}
	r := NewRanker(src)

	before, err := r.PositionInLine(context.Background(), reg("r1", model.KindMens))
	require.NoError(t, err)

	// r3 receives a bicycle; r1's position is unchanged.
	src.lines[model.KindMens][2].HasBicycle = true
	after, err := r.PositionInLine(context.Background(), reg("r1", model.KindMens))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPositionInLineRefundRestoresCreationOrderPosition(t *testing.T) {
	entries := []model.LineEntry{
		{Identifier: "r1", CandidateID: 1},
		{Identifier: "r2", CandidateID: 2, HasBicycle: true},
		{Identifier: "r3", CandidateID: 3},
	}
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{model.KindChildBig: entries}}
	r := NewRanker(src)

	pos, err := r.PositionInLine(context.Background(), reg("r3", model.KindChildBig))
	require.NoError(t, err)
	assert.Equal(t, 2, pos, "r2 holds a bicycle and is not counted")

	// Refund: r2's bicycle row is deleted, putting them back in line at
	// their original creation-order slot.
	src.lines[model.KindChildBig][1].HasBicycle = false

	pos, err = r.PositionInLine(context.Background(), reg("r2", model.KindChildBig))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	pos, err = r.PositionInLine(context.Background(), reg("r3", model.KindChildBig))
	require.NoError(t, err)
	assert.Equal(t, 3, pos, "everyone behind shifts back accordingly")
}

func TestPositionInLineUnknownRegistration(t *testing.T) {
	src := &fakeLineSource{lines: map[model.BicycleKind][]model.LineEntry{}}
	r := NewRanker(src)

	_, err := r.PositionInLine(context.Background(), reg("missing", model.KindMens))
	assert.ErrorIs(t, err, ErrNotInLine)
}
