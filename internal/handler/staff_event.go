package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/repository"
)

// CreateEvent handles POST /v1/staff/events and schedules a handout
// event.  An event at exactly the same due date is rejected; the check
// is advisory, not a storage constraint.
func (h *StaffHandler) CreateEvent(c echo.Context) error {
	var body struct {
		DueDate string `json:"due_date"` // RFC 3339
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	due, err := time.Parse(time.RFC3339, body.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid due_date, expected RFC 3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Events.ExistsAt(ctx, due)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "duplicate check failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "an event on that time and date already exists"})
	}

	ev, err := h.Events.Create(ctx, due)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// ListEvents handles GET /v1/staff/events.
func (h *StaffHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// candidateGroup is one per-kind bucket in the event detail view.
type candidateGroup struct {
	BicycleKind model.BicycleKind `json:"bicycle_kind"`
	Label       string            `json:"label"`
	Candidates  []model.Candidate `json:"candidates"`
}

// GetEvent handles GET /v1/staff/events/:id and returns the event with
// its invited candidates grouped per bicycle kind, the layout staff
// print for the handout day.  Candidates invited manually without a
// registration land in an extra "unregistered" bucket.
func (h *StaffHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}

	invited, err := h.Invitations.ListCandidatesByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invitations"})
	}

	groups := make([]candidateGroup, 0, len(model.AllKinds())+1)
	for _, kind := range model.AllKinds() {
		g := candidateGroup{BicycleKind: kind, Label: kind.Label(), Candidates: []model.Candidate{}}
		for _, ic := range invited {
			if ic.BicycleKind == kind {
				g.Candidates = append(g.Candidates, ic.Candidate)
			}
		}
		groups = append(groups, g)
	}
	unregistered := candidateGroup{Label: "unregistered", Candidates: []model.Candidate{}}
	for _, ic := range invited {
		if !ic.BicycleKind.Valid() {
			unregistered.Candidates = append(unregistered.Candidates, ic.Candidate)
		}
	}
	if len(unregistered.Candidates) > 0 {
		groups = append(groups, unregistered)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"event":                      ev,
		"total_number_of_candidates": len(invited),
		"candidate_groups":           groups,
	})
}

// AutoInvite handles POST /v1/staff/events/:id/auto-invite.  The body
// maps each bicycle kind to a number of invitation slots; winners are
// drawn uniformly at random from the eligible pool of each kind.
func (h *StaffHandler) AutoInvite(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Slots map[model.BicycleKind]int `json:"slots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	for kind, n := range body.Slots {
		if !kind.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bicycle_kind in slots"})
		}
		if n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot counts must not be negative"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}

	invited, err := h.Allocator.Allocate(ctx, ev.ID, body.Slots)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
	}

	total := 0
	perKind := make(map[string]int, len(invited))
	for kind, n := range invited {
		perKind[kind.Label()] = n
		total += n
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":      ev.ID,
		"invited":       perKind,
		"total_invited": total,
	})
}

// InviteCandidate handles POST /v1/staff/candidates/:id/invite: the
// manual invitation of one candidate to one event.
func (h *StaffHandler) InviteCandidate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		EventID uint64 `json:"event_id"`
	}
	if err := c.Bind(&body); err != nil || body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Candidates.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "candidate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load candidate"})
	}
	if _, err := h.Events.GetByID(ctx, body.EventID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}

	inv, err := h.Invitations.Create(ctx, id, body.EventID)
	if err != nil {
		if err == repository.ErrAlreadyInvited {
			return c.JSON(http.StatusConflict, echo.Map{"error": "the candidate is already invited to this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create invitation failed"})
	}
	return c.JSON(http.StatusCreated, inv)
}
