package handlers

import (
	"errors"
	"net/http"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/models"
)

// MyRegistrationsPage lists the registrations made with the user's email.
func (a *App) MyRegistrationsPage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	regs, err := database.ListRegistrationsByEmail(r.Context(), a.db, user.Email)
	if err != nil {
		a.serverError(w, r, err, "list registrations by email")
		return
	}
	a.RenderTemplate(w, r, "registrations/mine.html", map[string]any{"Registrations": regs})
}

// ownRegistration loads the registration named by the route and checks the
// current user is its registrant.
func (a *App) ownRegistration(w http.ResponseWriter, r *http.Request) (*models.Registration, bool) {
	id, ok := pathID(r)
	if !ok {
		a.notFound(w, r)
		return nil, false
	}
	reg, err := database.GetRegistrationByID(r.Context(), a.db, id)
	if errors.Is(err, database.ErrNotFound) {
		a.notFound(w, r)
		return nil, false
	}
	if err != nil {
		a.serverError(w, r, err, "load registration")
		return nil, false
	}

	user := currentUser(r.Context())
	if !models.SameEmail(user.Email, reg.Participant.Email) {
		a.log.Warn().Int64("registration_id", reg.ID).Int64("user_id", user.ID).Msg("feedback by non-registrant")
		redirectWithFlash(w, r, "/registrations/mine", flashError, a.tr.T("You do not have permission to leave feedback on this registration."))
		return nil, false
	}
	return reg, true
}

// FeedbackPage renders the feedback form.
func (a *App) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	reg, ok := a.ownRegistration(w, r)
	if !ok {
		return
	}
	a.RenderTemplate(w, r, "registrations/feedback.html", map[string]any{
		"Registration": reg,
		"Form":         &forms.FeedbackForm{Feedback: reg.Feedback},
	})
}

// SubmitFeedback stores the feedback text.
func (a *App) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	reg, ok := a.ownRegistration(w, r)
	if !ok {
		return
	}

	form := forms.ParseFeedbackForm(r)
	if errs := form.Validate(a.tr); !errs.Valid() {
		a.RenderTemplate(w, r, "registrations/feedback.html", map[string]any{
			"Registration": reg,
			"Form":         form,
			"Errors":       errs,
		})
		return
	}

	if err := database.SetFeedback(r.Context(), a.db, reg.ID, form.Feedback); err != nil {
		a.serverError(w, r, err, "set feedback")
		return
	}
	redirectWithFlash(w, r, "/registrations/mine", flashSuccess, a.tr.T("Thank you for your feedback!"))
}
