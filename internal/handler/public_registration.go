package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/config"
	"github.com/velobund/bicycle-handout/internal/model"
	"github.com/velobund/bicycle-handout/internal/queue"
	"github.com/velobund/bicycle-handout/internal/repository"
	publisher "github.com/velobund/bicycle-handout/internal/service"
	"github.com/velobund/bicycle-handout/internal/waitlist"
)

// PublicHandler serves the unauthenticated registration surface:
// greeting, registration form, thanks page and the opaque-identifier
// status lookup.
type PublicHandler struct {
	Cfg           config.Config
	Candidates    *repository.CandidateRepo
	Registrations *repository.RegistrationRepo
	Bicycles      *repository.BicycleRepo
	Ranker        *waitlist.Ranker
}

func NewPublicHandler(cfg config.Config, candidates *repository.CandidateRepo,
	registrations *repository.RegistrationRepo, bicycles *repository.BicycleRepo,
	ranker *waitlist.Ranker) *PublicHandler {
	if candidates == nil || registrations == nil || bicycles == nil || ranker == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Cfg: cfg, Candidates: candidates, Registrations: registrations,
		Bicycles: bicycles, Ranker: ranker}
}

type kindChoice struct {
	Kind  model.BicycleKind `json:"kind"`
	Label string            `json:"label"`
}

func kindChoices() []kindChoice {
	kinds := model.AllKinds()
	out := make([]kindChoice, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, kindChoice{Kind: k, Label: k.Label()})
	}
	return out
}

// openForRegistration reports whether the bicycle-less line is still
// below the configured cap.
func (h *PublicHandler) openForRegistration(ctx context.Context) (bool, error) {
	n, err := h.Candidates.CountWithoutBicycle(ctx)
	if err != nil {
		return false, err
	}
	return n < h.Cfg.RegistrationCap, nil
}

// Greeting handles GET /v1/register: the landing payload with the
// open-for-registration flag and the kind choices for the form.
func (h *PublicHandler) Greeting(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	open, err := h.openForRegistration(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"open_for_registration": open,
		"choices":               kindChoices(),
	})
}

type registerPublicReq struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	DateOfBirth string            `json:"date_of_birth"`
	BicycleKind model.BicycleKind `json:"bicycle_kind"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number"`
}

// Register handles POST /v1/register: the public registration form.
// It creates the candidate and the registration, then publishes the
// confirmation notification.  Publishing failure does not undo the
// committed registration; the registrant simply never gets the email
// and has to ask staff for their identifier.
func (h *PublicHandler) Register(c echo.Context) error {
	var req registerPublicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_of_birth, expected YYYY-MM-DD"})
	}
	if !req.BicycleKind.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bicycle_kind"})
	}
	if req.Email == "" && req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in at least email or phone_number"})
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	open, err := h.openForRegistration(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !open {
		// The original service reported a closed line as a 404.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "currently it is not possible to register for a bicycle"})
	}

	cand, err := h.Candidates.Create(ctx, req.FirstName, req.LastName, dob.Format(dateLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create candidate failed"})
	}
	reg, err := h.Registrations.Create(ctx, cand.ID, req.BicycleKind, req.Email, req.PhoneNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create registration failed"})
	}

	statusURL := h.Cfg.PublicBaseURL + "/v1/register/current-in-line?user_id=" + reg.Identifier
	ev := queue.RegistrationConfirmedEvent{
		MessageID:    uuid.NewString(),
		Identifier:   reg.Identifier,
		FirstName:    cand.FirstName,
		LastName:     cand.LastName,
		Email:        reg.Email,
		PhoneNumber:  reg.PhoneNumber,
		BicycleKind:  reg.BicycleKind.Label(),
		StatusURL:    statusURL,
		RegisteredAt: reg.TimeOfRegistration.UTC().Format(time.RFC3339),
	}
	if err := publisher.PublishRegistrationConfirmed(ctx, ev); err != nil {
		log.Printf("registration %s: confirmation notification not published: %v", reg.Identifier, err)
	}

	total, err := h.Candidates.CountWithoutBicycle(ctx)
	if err != nil {
		total = 0
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"identifier":    reg.Identifier,
		"bicycle_kind":  reg.BicycleKind.Label(),
		"status_url":    statusURL,
		"total_in_line": total,
	})
}

// Thanks handles GET /v1/register/thanks: the post-registration page
// payload with the total waiting-line count.  Sits behind the response
// cache; the figure may be a few seconds stale.
func (h *PublicHandler) Thanks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Candidates.CountWithoutBicycle(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	open := total < h.Cfg.RegistrationCap
	return c.JSON(http.StatusOK, echo.Map{
		"total_in_line":         total,
		"open_for_registration": open,
	})
}

// CurrentInLine handles GET /v1/register/current-in-line?user_id=<id>:
// the unauthenticated status lookup by opaque identifier.  The first
// successful lookup validates the email address and stamps the time;
// later lookups report already_viewed and leave the stamp untouched.
func (h *PublicHandler) CurrentInLine(c echo.Context) error {
	identifier := c.QueryParam("user_id")
	if identifier == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Registrations.GetByIdentifier(ctx, identifier)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown identifier"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	flipped, err := h.Registrations.MarkEmailValidated(ctx, reg.Identifier)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	pos, err := h.Ranker.PositionInLine(ctx, reg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ranking failed"})
	}

	hasBicycle := false
	if _, err := h.Bicycles.GetByCandidate(ctx, reg.CandidateID); err == nil {
		hasBicycle = true
	} else if err != repository.ErrNoBicycle {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"already_viewed": !flipped,
		"number_in_line": pos,
		"bicycle_kind":   reg.BicycleKind.Label(),
		"has_bicycle":    hasBicycle,
	})
}
