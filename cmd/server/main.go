package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/csuniv/election-system/internal/api"
	"github.com/csuniv/election-system/internal/infrastructure/config"
	"github.com/csuniv/election-system/internal/infrastructure/db/redis"
	"github.com/csuniv/election-system/internal/infrastructure/db/sqlite"
	"github.com/csuniv/election-system/internal/infrastructure/mail"
	"github.com/csuniv/election-system/internal/infrastructure/roster"
	"github.com/csuniv/election-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, cfg.Env, nil)

	db, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("open ballot database")
	}
	defer db.Close()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect session store")
	}
	defer rdb.Close()

	rosterStore, err := roster.NewFileStore(cfg.Election.RosterPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Election.RosterPath).Msg("open candidate roster")
	}

	notifier, err := mail.New(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build mail notifier")
	}

	e := api.NewRouter(db, rdb, rosterStore, notifier, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("election server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
