package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/event-registration/app/internal/config"
	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/handlers"
	"github.com/event-registration/app/internal/logger"
	"github.com/event-registration/app/internal/mail"
	"github.com/event-registration/app/internal/media"
	"github.com/event-registration/app/internal/session"
	"github.com/event-registration/app/web"
	"github.com/rs/zerolog"
)

func main() {
	// Used until the configured logger exists.
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to build logger")
	}
	if cfg.UsesDevSecret() {
		log.Warn().Msg("SECRET_KEY is the development default; set it in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to initialize database")
	}
	defer db.Close()

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SessionBackend).Msg("Failed to initialize session store")
	}
	defer closeSessions()

	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media storage")
	}

	app, err := handlers.NewApp(cfg, db, sessions, newMailer(cfg, log), mediaStore, web.Templates(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.Routes(web.Static()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Str("db", cfg.DBDriver).Str("sessions", cfg.SessionBackend).Msg("Starting server")
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionBackend == "redis" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
}

func newMailer(cfg *config.Config, log zerolog.Logger) mail.Mailer {
	if cfg.EmailBackend == "smtp" {
		return mail.NewSMTPMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailHostUser, cfg.EmailHostPassword, cfg.EmailFrom)
	}
	return mail.ConsoleMailer{Log: log.With().Str("component", "mail").Logger(), From: cfg.EmailFrom}
}
