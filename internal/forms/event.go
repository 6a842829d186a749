package forms

import (
	"net/http"
	"strconv"
	"time"

	"github.com/event-registration/app/internal/i18n"
	"github.com/event-registration/app/internal/models"
)

// DateLayout is the wire format of the event date input.
const DateLayout = "2006-01-02"

// EventForm is the create/edit event form. The banner upload is read by
// the handler, not here.
type EventForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Location    string `form:"location" validate:"required,max=200"`
	Capacity    string `form:"capacity" validate:"required,number"`
}

// EventFormFrom pre-fills the form from a stored event.
func EventFormFrom(e *models.Event) *EventForm {
	return &EventForm{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(DateLayout),
		Location:    e.Location,
		Capacity:    strconv.Itoa(e.Capacity),
	}
}

// ParseEventForm reads the submitted fields.
func ParseEventForm(r *http.Request) *EventForm {
	return &EventForm{
		Title:       value(r, "title"),
		Description: r.FormValue("description"),
		Date:        value(r, "date"),
		Location:    value(r, "location"),
		Capacity:    value(r, "capacity"),
	}
}

// Validate checks the fields. Capacity must be at least 1.
func (f *EventForm) Validate(tr *i18n.Translator) Errors {
	errs := check(f, tr)
	if errs.Get("capacity") == "" {
		if n, _ := strconv.Atoi(f.Capacity); n < 1 {
			errs.Add("capacity", tr.T("Ensure this value is greater than or equal to %d.", 1))
		}
	}
	return errs
}

// Apply copies validated values onto e. Call only after Validate passed.
func (f *EventForm) Apply(e *models.Event) {
	e.Title = f.Title
	e.Description = f.Description
	e.Date, _ = time.Parse(DateLayout, f.Date)
	e.Location = f.Location
	e.Capacity, _ = strconv.Atoi(f.Capacity)
}
