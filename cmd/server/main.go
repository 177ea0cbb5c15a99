package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/velobund/bicycle-handout/internal/config"
	"github.com/velobund/bicycle-handout/internal/database"
	"github.com/velobund/bicycle-handout/internal/handler"
	"github.com/velobund/bicycle-handout/internal/queue"
	"github.com/velobund/bicycle-handout/internal/repository"
	"github.com/velobund/bicycle-handout/internal/router"
	"github.com/velobund/bicycle-handout/internal/waitlist"
)

func main() {
	// .env is optional; in production the environment is set by the
	// deployment, in development it comes from the file.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional: with no client the rate limiter and the
	// response cache become no-ops.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	candidates := repository.NewCandidateRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	events := repository.NewEventRepo(db)
	invitations := repository.NewInvitationRepo(db)
	bicycles := repository.NewBicycleRepo(db)

	ranker := waitlist.NewRanker(registrations)
	allocator := waitlist.NewAllocator(registrations, invitations)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	publicHandler := handler.NewPublicHandler(cfg, candidates, registrations, bicycles, ranker)
	staffHandler := handler.NewStaffHandler(candidates, registrations, events, invitations, bicycles, ranker, allocator)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, rdb)
	router.RegisterStaff(e, staffHandler, cfg.JWTSecret)

	// Confirmation notifications are consumed in the background; the
	// consumer reconnects on its own when the broker drops.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
