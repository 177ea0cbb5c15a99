package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/repository"
)

// ListCandidates handles GET /v1/staff/candidates and returns one page
// of the candidate table.
func (h *StaffHandler) ListCandidates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page := pageParam(c)
	items, total, err := h.Candidates.List(ctx, page, tablePageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load candidates"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"page":     page,
		"per_page": tablePageSize,
		"total":    total,
	})
}

// candidateDetail is the full staff view of a candidate: identity plus
// registration, bicycle, invitations and the events the candidate can
// still be invited to.
type candidateDetail struct {
	Candidate          model.Candidate      `json:"candidate"`
	Registration       *model.Registration  `json:"registration,omitempty"`
	Bicycle            *model.Bicycle       `json:"bicycle,omitempty"`
	Invitations        []model.Invitation   `json:"invitations"`
	EventsNotInvitedTo []model.HandoutEvent `json:"events_not_invited_to"`
	NumberInLine       int                  `json:"number_in_line,omitempty"`
}

// GetCandidate handles GET /v1/staff/candidates/:id.
func (h *StaffHandler) GetCandidate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cand, err := h.Candidates.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "candidate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load candidate"})
	}

	det := candidateDetail{Candidate: cand}

	if reg, err := h.Registrations.GetByCandidate(ctx, id); err == nil {
		det.Registration = &reg
		if pos, err := h.Ranker.PositionInLine(ctx, reg); err == nil {
			det.NumberInLine = pos
		}
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load registration"})
	}

	if b, err := h.Bicycles.GetByCandidate(ctx, id); err == nil {
		det.Bicycle = &b
	} else if err != repository.ErrNoBicycle {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bicycle"})
	}

	invs, err := h.Invitations.ListByCandidate(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load invitations"})
	}
	det.Invitations = invs

	events, err := h.Invitations.EventsNotInvitedTo(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	det.EventsNotInvitedTo = events

	return c.JSON(http.StatusOK, det)
}

type candidateReq struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

func (r *candidateReq) validate() (string, bool) {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" || r.LastName == "" {
		return "first_name and last_name are required", false
	}
	if _, err := time.Parse(dateLayout, r.DateOfBirth); err != nil {
		return "invalid date_of_birth, expected YYYY-MM-DD", false
	}
	return "", true
}

// CreateCandidate handles POST /v1/staff/candidates.  The identity
// triple is checked for duplicates before insertion; the check is
// advisory and two concurrent creates can still both pass it.
func (h *StaffHandler) CreateCandidate(c echo.Context) error {
	var req candidateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Candidates.CountMatching(ctx, req.FirstName, req.LastName, req.DateOfBirth, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "duplicate check failed"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "this candidate already exists"})
	}

	cand, err := h.Candidates.Create(ctx, req.FirstName, req.LastName, req.DateOfBirth)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create candidate failed"})
	}
	return c.JSON(http.StatusCreated, cand)
}

// UpdateCandidate handles PUT /v1/staff/candidates/:id, rewriting the
// identity triple after the same advisory duplicate check, this time
// excluding the candidate itself.
func (h *StaffHandler) UpdateCandidate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req candidateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Candidates.CountMatching(ctx, req.FirstName, req.LastName, req.DateOfBirth, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "duplicate check failed"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "this candidate already exists"})
	}

	if err := h.Candidates.Update(ctx, id, req.FirstName, req.LastName, req.DateOfBirth); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "candidate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	cand, err := h.Candidates.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load candidate"})
	}
	return c.JSON(http.StatusOK, cand)
}

// DeleteCandidate handles DELETE /v1/staff/candidates/:id.  The
// candidate's registration, invitations and bicycle go with it via
// cascade.
func (h *StaffHandler) DeleteCandidate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Candidates.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "candidate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
