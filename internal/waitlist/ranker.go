// Package waitlist implements the two pieces of domain logic that are
// more than data access: ranking a registration inside its per-kind
// waiting line, and distributing invitation slots for a handout event
// by random draw.  Both operate on narrow store interfaces so the logic
// is testable without a database.
package waitlist

import (
	"context"
	"errors"

	"github.com/velobund/bicycle-handout/internal/model"
)

// ErrNotInLine is returned when the target registration never shows up
// in its own kind's enumeration.  With correct inputs this is
// unreachable; it exists so a storage inconsistency surfaces as an
// error instead of a wrong position.
var ErrNotInLine = errors.New("registration not found in its waiting line")

// LineSource supplies a kind's registrations in creation order,
// annotated with current bicycle possession.
type LineSource interface {
	LineEntries(ctx context.Context, kind model.BicycleKind) ([]model.LineEntry, error)
}

// Ranker computes 1-based waiting-line positions.
type Ranker struct {
	Source LineSource
}

// NewRanker returns a Ranker reading from src.
func NewRanker(src LineSource) *Ranker { return &Ranker{Source: src} }

// PositionInLine walks the registration's kind in creation order,
// counting every registration whose candidate lacks a bicycle, and
// returns the counter's value when the target is reached.  A bicycle-
// less registration first in creation order therefore has position 1.
// A target that already has a bicycle is skipped from the increment but
// still terminates the scan, so its "position" is the number of
// bicycle-less registrations ahead of it; callers wanting "done"
// semantics must check possession separately.
func (r *Ranker) PositionInLine(ctx context.Context, reg model.Registration) (int, error) {
	entries, err := r.Source.LineEntries(ctx, reg.BicycleKind)
	if err != nil {
		return 0, err
	}
	pos := 0
	for _, e := range entries {
		if !e.HasBicycle {
			pos++
		}
		if e.Identifier == reg.Identifier {
			return pos, nil
		}
	}
	return 0, ErrNotInLine
}
