package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/velobund/bicycle-handout/internal/config"
	"github.com/velobund/bicycle-handout/internal/handler"
	"github.com/velobund/bicycle-handout/internal/middleware"
)

// RegisterPublic registers the unauthenticated registration surface.
// No JWT or role middleware applies here; candidates interact with
// these endpoints before any account exists.
//
// The registration form endpoint sits behind the Redis token bucket so
// a misbehaving client cannot flood the waiting line.  The thanks page
// sits behind the response cache: it is a pure read whose line count
// may be a few seconds stale.  The current-in-line lookup is NEVER
// cached because its first hit validates the email address.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	g := e.Group("/v1/register")

	g.GET("", p.Greeting)
	g.POST("", p.Register, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.GET("/thanks", p.Thanks, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	g.GET("/current-in-line", p.CurrentInLine)
}
