package router

import (
	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/handler"
	"github.com/velobund/bicycle-handout/internal/middleware"
)

// RegisterStaff registers the staff-scoped endpoints under /v1/staff.
// All routes require a valid JWT with the STAFF role.  Staff manage
// candidates, schedule handout events, invite candidates (manually or
// via the random draw) and record handovers and refunds.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleStaff),
	)

	// Candidate administration.
	g.GET("/candidates", h.ListCandidates)
	g.POST("/candidates", h.CreateCandidate)
	g.GET("/candidates/:id", h.GetCandidate)
	g.PUT("/candidates/:id", h.UpdateCandidate)
	g.DELETE("/candidates/:id", h.DeleteCandidate)

	// Handout events and invitations.
	g.GET("/events", h.ListEvents)
	g.POST("/events", h.CreateEvent)
	g.GET("/events/:id", h.GetEvent)
	g.POST("/events/:id/auto-invite", h.AutoInvite)
	g.POST("/candidates/:id/invite", h.InviteCandidate)

	// Bicycle handover and refund.
	g.GET("/bicycles", h.ListBicycles)
	g.POST("/candidates/:id/handover", h.Handover)
	g.DELETE("/candidates/:id/bicycle", h.Refund)
}
