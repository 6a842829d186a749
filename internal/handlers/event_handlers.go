package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/media"
	"github.com/event-registration/app/internal/models"
	"github.com/gorilla/mux"
)

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

// loadEvent fetches the event named by the route, rendering 404 or 500 on
// failure.
func (a *App) loadEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	id, ok := pathID(r)
	if !ok {
		a.notFound(w, r)
		return nil, false
	}
	event, err := database.GetEventByID(r.Context(), a.db, id)
	if errors.Is(err, database.ErrNotFound) {
		a.notFound(w, r)
		return nil, false
	}
	if err != nil {
		a.serverError(w, r, err, "load event")
		return nil, false
	}
	return event, true
}

// ownedEvent loads the event and checks the current user created it.
// Others are sent back to the list with denied as an error notice.
func (a *App) ownedEvent(w http.ResponseWriter, r *http.Request, denied string) (*models.Event, bool) {
	event, ok := a.loadEvent(w, r)
	if !ok {
		return nil, false
	}
	user := currentUser(r.Context())
	if user == nil || !event.OwnedBy(user.ID) {
		uid := int64(0)
		if user != nil {
			uid = user.ID
		}
		a.log.Warn().Int64("event_id", event.ID).Int64("user_id", uid).Msg("ownership check failed")
		redirectWithFlash(w, r, "/", flashError, denied)
		return nil, false
	}
	return event, true
}

func (a *App) denyModify() string {
	return a.tr.T("You do not have permission to modify this event.")
}

// EventsListPage displays all events, latest date first.
func (a *App) EventsListPage(w http.ResponseWriter, r *http.Request) {
	events, err := database.ListEvents(r.Context(), a.db)
	if err != nil {
		a.serverError(w, r, err, "list events")
		return
	}
	a.RenderTemplate(w, r, "events/list.html", map[string]any{"Events": events})
}

// EventDetailPage displays one event.
func (a *App) EventDetailPage(w http.ResponseWriter, r *http.Request) {
	event, ok := a.loadEvent(w, r)
	if !ok {
		return
	}
	a.RenderTemplate(w, r, "events/detail.html", map[string]any{"Event": event})
}

// CreateEventPage renders the empty event form.
func (a *App) CreateEventPage(w http.ResponseWriter, r *http.Request) {
	a.RenderTemplate(w, r, "events/form.html", map[string]any{
		"Form":   &forms.EventForm{},
		"Action": "/events/new",
	})
}

// CreateEvent stores a new event owned by the current user.
func (a *App) CreateEvent(w http.ResponseWriter, r *http.Request) {
	form, errs := a.parseEventForm(w, r)
	var banner string
	if errs.Valid() {
		banner = a.saveBanner(r, errs)
	}
	if !errs.Valid() {
		a.RenderTemplate(w, r, "events/form.html", map[string]any{
			"Form":   form,
			"Errors": errs,
			"Error":  a.tr.T("Please correct the errors below."),
			"Action": "/events/new",
		})
		return
	}

	event := &models.Event{CreatorID: currentUser(r.Context()).ID, Banner: banner}
	form.Apply(event)
	created, err := database.CreateEvent(r.Context(), a.db, event)
	if err != nil {
		a.removeBanner(banner)
		a.serverError(w, r, err, "create event")
		return
	}
	a.log.Info().Int64("event_id", created.ID).Int64("user_id", created.CreatorID).Msg("event created")
	redirectWithFlash(w, r, "/", flashSuccess, a.tr.T("Event created successfully."))
}

// EditEventPage renders the event form filled with the stored values.
func (a *App) EditEventPage(w http.ResponseWriter, r *http.Request) {
	event, ok := a.ownedEvent(w, r, a.denyModify())
	if !ok {
		return
	}
	a.RenderTemplate(w, r, "events/form.html", map[string]any{
		"Event":  event,
		"Form":   forms.EventFormFrom(event),
		"Action": "/events/" + strconv.FormatInt(event.ID, 10) + "/edit",
	})
}

// UpdateEvent saves the edited event. A new banner replaces the old file;
// no upload keeps the current one.
func (a *App) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := a.ownedEvent(w, r, a.denyModify())
	if !ok {
		return
	}

	form, errs := a.parseEventForm(w, r)
	var banner string
	if errs.Valid() {
		banner = a.saveBanner(r, errs)
	}
	if !errs.Valid() {
		a.RenderTemplate(w, r, "events/form.html", map[string]any{
			"Event":  event,
			"Form":   form,
			"Errors": errs,
			"Error":  a.tr.T("Please correct the errors below."),
			"Action": "/events/" + strconv.FormatInt(event.ID, 10) + "/edit",
		})
		return
	}

	oldBanner := event.Banner
	form.Apply(event)
	if banner != "" {
		event.Banner = banner
	}
	if err := database.UpdateEvent(r.Context(), a.db, event); err != nil {
		a.removeBanner(banner)
		if errors.Is(err, database.ErrNotFound) {
			a.notFound(w, r)
			return
		}
		a.serverError(w, r, err, "update event")
		return
	}
	if banner != "" {
		a.removeBanner(oldBanner)
	}
	a.log.Info().Int64("event_id", event.ID).Msg("event updated")
	redirectWithFlash(w, r, "/", flashSuccess, a.tr.T("Event updated successfully."))
}

// DeleteEventPage asks for confirmation.
func (a *App) DeleteEventPage(w http.ResponseWriter, r *http.Request) {
	event, ok := a.ownedEvent(w, r, a.denyModify())
	if !ok {
		return
	}
	a.RenderTemplate(w, r, "events/confirm_delete.html", map[string]any{"Event": event})
}

// DeleteEvent removes the event with its registrations and banner.
func (a *App) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := a.ownedEvent(w, r, a.denyModify())
	if !ok {
		return
	}
	if err := database.DeleteEvent(r.Context(), a.db, event.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
		a.serverError(w, r, err, "delete event")
		return
	}
	a.removeBanner(event.Banner)
	a.log.Info().Int64("event_id", event.ID).Msg("event deleted")
	redirectWithFlash(w, r, "/", flashSuccess, a.tr.T("Event deleted successfully."))
}

// RegistrantsPage lists the registrations of an event to its creator.
func (a *App) RegistrantsPage(w http.ResponseWriter, r *http.Request) {
	event, ok := a.ownedEvent(w, r, a.tr.T("You do not have permission to view registrants of this event."))
	if !ok {
		return
	}
	regs, err := database.ListRegistrants(r.Context(), a.db, event.ID)
	if err != nil {
		a.serverError(w, r, err, "list registrants")
		return
	}
	a.RenderTemplate(w, r, "events/registrants.html", map[string]any{
		"Event":         event,
		"Registrations": regs,
	})
}

// parseEventForm reads a multipart or urlencoded event form. The body is
// capped a little above the banner limit.
func (a *App) parseEventForm(w http.ResponseWriter, r *http.Request) (*forms.EventForm, forms.Errors) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes+1<<20)
	err := r.ParseMultipartForm(1 << 20)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	form := forms.ParseEventForm(r)
	if err != nil {
		errs := forms.Errors{}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			errs.Add("banner", a.tr.T("The uploaded file is too large."))
		} else {
			errs.Add("", err.Error())
		}
		return form, errs
	}
	return form, form.Validate(a.tr)
}

// saveBanner stores an uploaded banner, if any, and returns its media path.
// Upload problems are added to errs.
func (a *App) saveBanner(r *http.Request, errs forms.Errors) string {
	file, _, err := r.FormFile("banner")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return ""
	}
	if err != nil {
		errs.Add("banner", a.tr.T("Upload a valid image."))
		return ""
	}
	defer file.Close()

	rel, err := a.media.SaveBanner(file)
	switch {
	case err == nil:
		return rel
	case errors.Is(err, media.ErrNotImage):
		errs.Add("banner", a.tr.T("Upload a valid image."))
	case errors.Is(err, media.ErrTooLarge):
		errs.Add("banner", a.tr.T("The uploaded file is too large."))
	default:
		a.log.Error().Err(err).Msg("save banner")
		errs.Add("banner", a.tr.T("Upload a valid image."))
	}
	return ""
}

func (a *App) removeBanner(rel string) {
	if err := a.media.Delete(rel); err != nil {
		a.log.Error().Err(err).Str("banner", rel).Msg("remove banner")
	}
}
