package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/repository"
)

// Handover handles POST /v1/staff/candidates/:id/handover and records
// that the candidate received a bicycle.  A candidate can hold at most
// one bicycle; the one-per-candidate rule lives in a storage constraint
// so concurrent handovers cannot both win.
func (h *StaffHandler) Handover(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		BicycleNumber   uint32 `json:"bicycle_number"`
		LockCombination uint32 `json:"lock_combination"`
		Color           string `json:"color"`
		Brand           string `json:"brand"`
		GeneralRemarks  string `json:"general_remarks"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.BicycleNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bicycle_number is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Candidates.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "candidate not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load candidate"})
	}

	b, err := h.Bicycles.Create(ctx, model.Bicycle{
		CandidateID:     id,
		BicycleNumber:   body.BicycleNumber,
		LockCombination: body.LockCombination,
		Color:           body.Color,
		Brand:           body.Brand,
		GeneralRemarks:  body.GeneralRemarks,
	})
	if err != nil {
		if err == repository.ErrHasBicycle {
			return c.JSON(http.StatusConflict, echo.Map{"error": "this candidate already has a bicycle"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "handover failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// Refund handles DELETE /v1/staff/candidates/:id/bicycle.  Removing the
// bicycle record puts the candidate back into the waiting line at their
// original registration position.
func (h *StaffHandler) Refund(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bicycles.DeleteByCandidate(ctx, id); err != nil {
		if err == repository.ErrNoBicycle {
			return c.JSON(http.StatusConflict, echo.Map{"error": "this candidate does not have a bicycle"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refund failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBicycles handles GET /v1/staff/bicycles: one page of the
// handed-over bicycles table.
func (h *StaffHandler) ListBicycles(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page := pageParam(c)
	items, total, err := h.Bicycles.List(ctx, page, tablePageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bicycles"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"page":     page,
		"per_page": tablePageSize,
		"total":    total,
	})
}
