package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/repository"
	"github.com/velobund/bicycle-handout/internal/waitlist"
)

// dateLayout is the wire format for dates of birth and the storage
// format of the DATE column.
const dateLayout = "2006-01-02"

// tablePageSize is the page size of the staff candidate and bicycle
// tables.
const tablePageSize = 10

// StaffHandler bundles the repositories and the waitlist core for the
// authenticated staff surface.
type StaffHandler struct {
	Candidates    *repository.CandidateRepo
	Registrations *repository.RegistrationRepo
	Events        *repository.EventRepo
	Invitations   *repository.InvitationRepo
	Bicycles      *repository.BicycleRepo
	Ranker        *waitlist.Ranker
	Allocator     *waitlist.Allocator
}

// NewStaffHandler constructs a StaffHandler and panics if any
// dependency is nil.
func NewStaffHandler(candidates *repository.CandidateRepo, registrations *repository.RegistrationRepo,
	events *repository.EventRepo, invitations *repository.InvitationRepo, bicycles *repository.BicycleRepo,
	ranker *waitlist.Ranker, allocator *waitlist.Allocator) *StaffHandler {
	if candidates == nil || registrations == nil || events == nil || invitations == nil ||
		bicycles == nil || ranker == nil || allocator == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{
		Candidates:    candidates,
		Registrations: registrations,
		Events:        events,
		Invitations:   invitations,
		Bicycles:      bicycles,
		Ranker:        ranker,
		Allocator:     allocator,
	}
}

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.  JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageParam parses the optional ?page= query parameter, 1-based.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
