package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/event-registration/app/internal/auth"
	"github.com/event-registration/app/internal/config"
	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/i18n"
	"github.com/event-registration/app/internal/mail"
	"github.com/event-registration/app/internal/media"
	"github.com/event-registration/app/internal/models"
	"github.com/event-registration/app/internal/session"
	"github.com/rs/zerolog"
)

// ResetTokenTTL is how long a password reset link stays valid.
const ResetTokenTTL = time.Hour

// App carries the dependencies shared by every handler.
type App struct {
	cfg       *config.Config
	db        *database.DB
	sessions  session.Store
	mailer    mail.Mailer
	media     *media.Store
	resets    *auth.ResetTokens
	tr        *i18n.Translator
	log       zerolog.Logger
	templates map[string]*template.Template
}

// NewApp wires the handlers and parses the templates in templatesFS.
func NewApp(cfg *config.Config, db *database.DB, sessions session.Store, mailer mail.Mailer, mediaStore *media.Store, templatesFS fs.FS, log zerolog.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		db:       db,
		sessions: sessions,
		mailer:   mailer,
		media:    mediaStore,
		resets:   auth.NewResetTokens(cfg.SecretKey, ResetTokenTTL),
		tr:       i18n.New(cfg.Language),
		log:      log,
	}
	if err := a.LoadTemplates(templatesFS); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return a, nil
}

type contextKey int

const userContextKey contextKey = iota

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// currentUser returns the user loaded by the session middleware, or nil.
func currentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
