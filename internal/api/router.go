package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/csuniv/election-system/internal/api/handler"
	"github.com/csuniv/election-system/internal/api/middleware"
	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
	"github.com/csuniv/election-system/internal/core/service"
	"github.com/csuniv/election-system/internal/infrastructure/config"
	"github.com/csuniv/election-system/internal/infrastructure/db/redis"
	"github.com/csuniv/election-system/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *sql.DB,
	rdb *redisclient.Client,
	roster ports.RosterStore,
	notifier ports.Notifier,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("election"))

	// --- Dependencies ---
	voterRepo := sqlite.NewVoterRepository(db)
	ballotRepo := sqlite.NewBallotRepository(db)
	challengeStore := redis.NewChallengeStore(rdb, cfg.Election.CodeTTL)

	window := domain.VotingWindow{
		Start: cfg.Election.VotingStart,
		End:   cfg.Election.VotingEnd,
	}

	votingService := service.NewVotingService(
		voterRepo, ballotRepo, challengeStore, roster, notifier,
		cfg.Election.AllowedDomain, window, log,
	)
	adminService := service.NewAdminService(
		voterRepo, ballotRepo, roster, cfg.Election.AllowedDomain, log,
	)
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTL)

	electionHandler := handler.NewElectionHandler(votingService)
	adminHandler := handler.NewAdminHandler(adminService, authService)

	// --- Voter flow ---
	election := e.Group("/election")
	election.POST("/class-year", electionHandler.StartSession)
	election.POST("/email", electionHandler.SubmitEmail)
	election.POST("/code", electionHandler.SubmitCode)
	election.GET("/ballot", electionHandler.Ballot)
	election.POST("/ballot", electionHandler.SubmitBallot)

	// --- Admin panel ---
	e.POST("/admin/login", adminHandler.Login)

	admin := e.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret))
	admin.Use(middleware.RBAC(domain.RoleAdmin))
	admin.GET("/candidates", adminHandler.Roster)
	admin.POST("/candidates", adminHandler.AddCandidate)
	admin.DELETE("/candidates/:class_year/:name", adminHandler.RemoveCandidate)
	admin.POST("/ballots", adminHandler.ManualBallot)
	admin.GET("/results", adminHandler.Tally)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
