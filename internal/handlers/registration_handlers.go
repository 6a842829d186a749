package handlers

import (
	"errors"
	"net/http"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/models"
)

var genderChoices = []string{models.GenderMale, models.GenderFemale, models.GenderOther}

// RegisterParticipantPage renders the registration form of an event. A
// logged-in user's email is filled in.
func (a *App) RegisterParticipantPage(w http.ResponseWriter, r *http.Request) {
	event, ok := a.loadEvent(w, r)
	if !ok {
		return
	}
	form := &forms.ParticipantForm{}
	if user := currentUser(r.Context()); user != nil {
		form.Email = user.Email
	}
	a.RenderTemplate(w, r, "events/register.html", map[string]any{
		"Event":   event,
		"Form":    form,
		"Genders": genderChoices,
	})
}

// RegisterParticipant runs the registration workflow. Refusals re-render
// the form with the reason.
func (a *App) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	event, ok := a.loadEvent(w, r)
	if !ok {
		return
	}

	form := forms.ParseParticipantForm(r)
	render := func(errs forms.Errors, msg string) {
		a.RenderTemplate(w, r, "events/register.html", map[string]any{
			"Event":   event,
			"Form":    form,
			"Genders": genderChoices,
			"Errors":  errs,
			"Error":   msg,
		})
	}

	if errs := form.Validate(a.tr); !errs.Valid() {
		render(errs, a.tr.T("Please correct the errors below."))
		return
	}

	var requesterID int64
	if user := currentUser(r.Context()); user != nil {
		requesterID = user.ID
	}

	reg, err := database.RegisterParticipant(r.Context(), a.db, event.ID, requesterID, form.Participant())
	switch {
	case err == nil:
	case database.IsRegistrationError(err):
		a.log.Info().Err(err).Int64("event_id", event.ID).Msg("registration refused")
		render(forms.Errors{}, a.registrationRefusal(err))
		return
	case errors.Is(err, database.ErrNotFound):
		a.notFound(w, r)
		return
	default:
		a.serverError(w, r, err, "register participant")
		return
	}

	a.log.Info().Int64("event_id", event.ID).Int64("registration_id", reg.ID).Msg("participant registered")
	redirectWithFlash(w, r, "/", flashSuccess, a.tr.T("Registration successful!"))
}

func (a *App) registrationRefusal(err error) string {
	switch {
	case errors.Is(err, database.ErrOwnerCannotRegister):
		return a.tr.T("You cannot register for your own event.")
	case errors.Is(err, database.ErrEventFull):
		return a.tr.T("Maximum capacity reached for this event.")
	default:
		return a.tr.T("This email is already registered for this event.")
	}
}
