package handlers

import (
	"errors"
	"net/http"

	"github.com/event-registration/app/internal/auth"
	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
)

// AccountPage renders the account form with the current email.
func (a *App) AccountPage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	a.RenderTemplate(w, r, "account.html", map[string]any{
		"Form": &forms.AccountForm{Email: user.Email},
	})
}

// UpdateAccount changes the email and, when given, the password. The old
// password must verify and the email must not belong to another account.
func (a *App) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	form := forms.ParseAccountForm(r)
	errs := form.Validate(a.tr)

	if form.OldPassword != "" {
		err := auth.CheckPassword(user.PasswordHash, form.OldPassword)
		if errors.Is(err, auth.ErrPasswordMismatch) {
			errs.Add("old_password", a.tr.T("Your old password was entered incorrectly."))
		} else if err != nil {
			a.serverError(w, r, err, "check old password")
			return
		}
	}

	if errs.Get("email") == "" {
		taken, err := database.EmailTakenByOther(r.Context(), a.db, form.Email, user.ID)
		if err != nil {
			a.serverError(w, r, err, "check email")
			return
		}
		if taken {
			errs.Add("email", a.tr.T("This email is already in use."))
		}
	}

	if errs.Valid() {
		var newPassword string
		if form.ChangesPassword() {
			newPassword = form.NewPassword1
		}
		_, err := database.UpdateAccount(r.Context(), a.db, user.ID, form.Email, newPassword)
		switch {
		case err == nil:
			a.log.Info().Int64("user_id", user.ID).Bool("password_changed", newPassword != "").Msg("account updated")
			redirectWithFlash(w, r, "/account", flashSuccess, a.tr.T("Your account has been updated."))
			return
		case errors.Is(err, database.ErrEmailTaken):
			errs.Add("email", a.tr.T("This email is already in use."))
		default:
			a.serverError(w, r, err, "update account")
			return
		}
	}

	a.RenderTemplate(w, r, "account.html", map[string]any{
		"Form":   form,
		"Errors": errs,
		"Error":  a.tr.T("Please correct the errors below."),
	})
}
