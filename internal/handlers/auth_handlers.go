package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/event-registration/app/internal/auth"
	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/mail"
	"github.com/event-registration/app/internal/models"
)

const sessionCookieName = "session_token"

// RegisterPage renders the user signup page.
func (a *App) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.RenderTemplate(w, r, "auth/register.html", map[string]any{"Form": &forms.SignupForm{}})
}

// Register handles the signup form submission.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseSignupForm(r)
	errs := form.Validate(a.tr)
	if errs.Valid() {
		_, err := database.CreateUser(r.Context(), a.db, form.Email, form.Password)
		switch {
		case err == nil:
			redirectWithFlash(w, r, "/login", flashSuccess, a.tr.T("Account created. You can log in now."))
			return
		case errors.Is(err, database.ErrEmailTaken):
			errs.Add("email", a.tr.T("This email is already in use."))
		default:
			a.serverError(w, r, err, "create user")
			return
		}
	}

	a.RenderTemplate(w, r, "auth/register.html", map[string]any{
		"Form":   form,
		"Errors": errs,
		"Error":  a.tr.T("Please correct the errors below."),
	})
}

// LoginPage renders the login page.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.RenderTemplate(w, r, "auth/login.html", map[string]any{
		"Form": &forms.LoginForm{},
		"Next": r.URL.Query().Get("next"),
	})
}

// Login checks the credentials, starts a session and redirects.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLoginForm(r)
	next := r.FormValue("next")
	invalid := func() {
		a.RenderTemplate(w, r, "auth/login.html", map[string]any{
			"Form":  form,
			"Next":  next,
			"Error": a.tr.T("Invalid email or password."),
		})
	}

	if !form.Validate(a.tr).Valid() {
		invalid()
		return
	}

	user, err := database.GetUserByEmail(r.Context(), a.db, form.Email)
	if errors.Is(err, database.ErrNotFound) {
		invalid()
		return
	}
	if err != nil {
		a.serverError(w, r, err, "load user for login")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, form.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			a.log.Error().Err(err).Int64("user_id", user.ID).Msg("check password")
		}
		invalid()
		return
	}

	if err := a.startSession(w, r, user); err != nil {
		a.serverError(w, r, err, "create session")
		return
	}
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Logout ends the session and expires the cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := a.sessions.Delete(r.Context(), cookie.Value); err != nil {
			a.log.Error().Err(err).Msg("delete session")
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *App) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, err := a.sessions.Create(r.Context(), user.ID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.cfg.SessionTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// safeNext keeps redirects after login on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return next
}

// PasswordResetPage renders the "forgot password" form.
func (a *App) PasswordResetPage(w http.ResponseWriter, r *http.Request) {
	a.RenderTemplate(w, r, "auth/password_reset.html", map[string]any{"Form": &forms.PasswordResetForm{}})
}

// PasswordReset mails a reset link when the account exists. The response
// is the same either way.
func (a *App) PasswordReset(w http.ResponseWriter, r *http.Request) {
	form := forms.ParsePasswordResetForm(r)
	if errs := form.Validate(a.tr); !errs.Valid() {
		a.RenderTemplate(w, r, "auth/password_reset.html", map[string]any{"Form": form, "Errors": errs})
		return
	}

	user, err := database.GetUserByEmail(r.Context(), a.db, form.Email)
	switch {
	case err == nil:
		a.sendResetLink(r, user)
	case errors.Is(err, database.ErrNotFound):
		a.log.Info().Str("email", form.Email).Msg("password reset for unknown email")
	default:
		a.serverError(w, r, err, "load user for password reset")
		return
	}
	a.RenderTemplate(w, r, "auth/password_reset_done.html", nil)
}

func (a *App) sendResetLink(r *http.Request, user *models.User) {
	token, err := a.resets.Issue(user)
	if err != nil {
		a.log.Error().Err(err).Int64("user_id", user.ID).Msg("issue reset token")
		return
	}
	link := a.cfg.BaseURL + "/password-reset/confirm?token=" + url.QueryEscape(token)
	msg := mail.Message{
		To:      user.Email,
		Subject: a.tr.T("Password reset"),
		Body:    a.tr.T("Use this link to set a new password: %s", link),
	}
	if err := a.mailer.Send(r.Context(), msg); err != nil {
		a.log.Error().Err(err).Int64("user_id", user.ID).Msg("send reset email")
	}
}

// resetUser resolves a reset token to its user, rendering a 400 page when
// the token is invalid, expired or already used.
func (a *App) resetUser(w http.ResponseWriter, r *http.Request, token string) (*models.User, bool) {
	invalid := func() {
		a.RenderErrorPage(w, r, http.StatusBadRequest, a.tr.T("Bad request"), a.tr.T("This password reset link is invalid or has expired."))
	}

	claims, err := a.resets.Parse(token)
	if err != nil {
		invalid()
		return nil, false
	}
	userID, err := claims.UserID()
	if err != nil {
		invalid()
		return nil, false
	}
	user, err := database.GetUserByID(r.Context(), a.db, userID)
	if errors.Is(err, database.ErrNotFound) {
		invalid()
		return nil, false
	}
	if err != nil {
		a.serverError(w, r, err, "load user for reset token")
		return nil, false
	}
	if !claims.Matches(user) {
		invalid()
		return nil, false
	}
	return user, true
}

// PasswordResetConfirmPage shows the new password form for a valid link.
func (a *App) PasswordResetConfirmPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, ok := a.resetUser(w, r, token); !ok {
		return
	}
	a.RenderTemplate(w, r, "auth/password_reset_confirm.html", map[string]any{
		"Token": token,
		"Form":  &forms.SetPasswordForm{},
	})
}

// PasswordResetConfirm sets the new password.
func (a *App) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	user, ok := a.resetUser(w, r, token)
	if !ok {
		return
	}

	form := forms.ParseSetPasswordForm(r)
	if errs := form.Validate(a.tr); !errs.Valid() {
		a.RenderTemplate(w, r, "auth/password_reset_confirm.html", map[string]any{
			"Token":  token,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	if err := database.SetPassword(r.Context(), a.db, user.ID, form.NewPassword1); err != nil {
		a.serverError(w, r, err, "set password")
		return
	}
	a.log.Info().Int64("user_id", user.ID).Msg("password reset")
	redirectWithFlash(w, r, "/login", flashSuccess, a.tr.T("Your password has been set. You may log in now."))
}
