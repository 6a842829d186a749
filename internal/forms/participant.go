package forms

import (
	"net/http"

	"github.com/event-registration/app/internal/i18n"
	"github.com/event-registration/app/internal/models"
)

// ParticipantForm collects the contact details of a registration.
type ParticipantForm struct {
	Name   string `form:"name" validate:"required,max=100"`
	Email  string `form:"email" validate:"required,email,max=254"`
	Phone  string `form:"phone" validate:"required,max=20"`
	Gender string `form:"gender" validate:"omitempty,oneof=M F O"`
}

// ParseParticipantForm reads the participant fields from r.
func ParseParticipantForm(r *http.Request) *ParticipantForm {
	return &ParticipantForm{
		Name:   value(r, "name"),
		Email:  value(r, "email"),
		Phone:  value(r, "phone"),
		Gender: value(r, "gender"),
	}
}

// Validate checks the required contact details.
func (f *ParticipantForm) Validate(tr *i18n.Translator) Errors {
	return check(f, tr)
}

// Participant builds the record to store.
func (f *ParticipantForm) Participant() *models.Participant {
	return &models.Participant{
		Name:   f.Name,
		Email:  f.Email,
		Phone:  f.Phone,
		Gender: f.Gender,
	}
}

// FeedbackForm attaches free text to a registration.
type FeedbackForm struct {
	Feedback string `form:"feedback" validate:"required,max=2000"`
}

// ParseFeedbackForm reads the feedback text from r.
func ParseFeedbackForm(r *http.Request) *FeedbackForm {
	return &FeedbackForm{Feedback: value(r, "feedback")}
}

// Validate rejects empty or oversized feedback.
func (f *FeedbackForm) Validate(tr *i18n.Translator) Errors {
	return check(f, tr)
}
