package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/session"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request with its status and duration.
func (a *App) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(rw, r)

		a.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})
}

// recoverMiddleware turns a handler panic into a 500 page.
func (a *App) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				a.log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				a.RenderErrorPage(w, r, http.StatusInternalServerError, a.tr.T("Server error"), a.tr.T("Something went wrong. Please try again later."))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// sessionMiddleware loads the logged-in user, if any, into the request context.
func (a *App) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := a.sessions.Lookup(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				a.log.Error().Err(err).Msg("session lookup failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := database.GetUserByID(r.Context(), a.db, userID)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				a.log.Error().Err(err).Int64("user_id", userID).Msg("load session user")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// AuthMiddleware protects routes that require a logged-in user.
func (a *App) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			target := "/login"
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
