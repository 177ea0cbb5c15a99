// Package router defines how the HTTP routes of the service are
// registered on the Echo instance.  Public registration routes, staff
// routes and auth routes each live in their own file.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/handler"
	"github.com/velobund/bicycle-handout/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff authentication routes and their
// middleware.  Unauthenticated operations live under /v1/auth, while
// protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login and refresh each produce or exchange a token pair.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a fresh pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh_token in the body, or a bearer access
	// token, and revokes the matching session(s).  It deliberately does
	// not require JWT middleware so an expired access token can still
	// log out with its refresh token.
	g.POST("/logout", a.Logout)

	// Protected group: every handler registered here runs JWTAuth and
	// the STAFF role check first.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleStaff))
	auth.GET("/me", a.Me)
}
