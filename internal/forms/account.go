package forms

import (
	"errors"
	"net/http"

	"github.com/event-registration/app/internal/auth"
	"github.com/event-registration/app/internal/i18n"
)

// SignupForm creates an account.
type SignupForm struct {
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// ParseSignupForm reads the signup fields from r.
func ParseSignupForm(r *http.Request) *SignupForm {
	return &SignupForm{
		Email:           accountEmail(r, "email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

// Validate checks the email and the new password rules.
func (f *SignupForm) Validate(tr *i18n.Translator) Errors {
	errs := check(f, tr)
	if errs.Get("password") == "" && errs.Get("confirm_password") == "" {
		passwordErrors(errs, "confirm_password", f.Password, f.ConfirmPassword, tr)
	}
	return errs
}

// LoginForm authenticates by email and password.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ParseLoginForm reads the login fields from r.
func ParseLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    accountEmail(r, "email"),
		Password: r.FormValue("password"),
	}
}

// Validate checks that both fields are filled.
func (f *LoginForm) Validate(tr *i18n.Translator) Errors {
	return check(f, tr)
}

// AccountForm changes the email and, optionally, the password. The old
// password and email ownership are checked by the caller against the store.
type AccountForm struct {
	Email        string `form:"email" validate:"required,email,max=254"`
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

// ParseAccountForm reads the account update fields from r.
func ParseAccountForm(r *http.Request) *AccountForm {
	return &AccountForm{
		Email:        accountEmail(r, "email"),
		OldPassword:  r.FormValue("old_password"),
		NewPassword1: r.FormValue("new_password1"),
		NewPassword2: r.FormValue("new_password2"),
	}
}

// ChangesPassword reports whether either new password field was filled.
func (f *AccountForm) ChangesPassword() bool {
	return f.NewPassword1 != "" || f.NewPassword2 != ""
}

// Validate checks the fields, applying the password rules only when ChangesPassword.
func (f *AccountForm) Validate(tr *i18n.Translator) Errors {
	errs := check(f, tr)
	if f.ChangesPassword() {
		passwordErrors(errs, "new_password2", f.NewPassword1, f.NewPassword2, tr)
	}
	return errs
}

// PasswordResetForm requests a reset link.
type PasswordResetForm struct {
	Email string `form:"email" validate:"required,email"`
}

// ParsePasswordResetForm reads the email to send a reset link to.
func ParsePasswordResetForm(r *http.Request) *PasswordResetForm {
	return &PasswordResetForm{Email: accountEmail(r, "email")}
}

// Validate checks the email.
func (f *PasswordResetForm) Validate(tr *i18n.Translator) Errors {
	return check(f, tr)
}

// SetPasswordForm chooses a new password from a reset link.
type SetPasswordForm struct {
	NewPassword1 string `form:"new_password1" validate:"required"`
	NewPassword2 string `form:"new_password2" validate:"required"`
}

// ParseSetPasswordForm reads the new password and the reset token.
func ParseSetPasswordForm(r *http.Request) *SetPasswordForm {
	return &SetPasswordForm{
		NewPassword1: r.FormValue("new_password1"),
		NewPassword2: r.FormValue("new_password2"),
	}
}

// Validate applies the new password rules.
func (f *SetPasswordForm) Validate(tr *i18n.Translator) Errors {
	errs := check(f, tr)
	if errs.Valid() {
		passwordErrors(errs, "new_password2", f.NewPassword1, f.NewPassword2, tr)
	}
	return errs
}

// passwordErrors applies the shared new-password rules, reporting on field.
func passwordErrors(errs Errors, field, password, confirm string, tr *i18n.Translator) {
	err := auth.ValidateNewPassword(password, confirm)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrPasswordsDiffer):
		errs.Add(field, tr.T("The two password fields didn't match."))
	case errors.Is(err, auth.ErrPasswordTooShort):
		errs.Add(field, tr.T("This password is too short. It must contain at least %d characters.", auth.MinPasswordLength))
	case errors.Is(err, auth.ErrPasswordTooLong):
		errs.Add(field, tr.T("This password is too long. It must contain at most %d bytes.", auth.MaxPasswordBytes))
	default:
		errs.Add(field, err.Error())
	}
}
