package models

import "time"

type Registration struct {
	ID            int64
	EventID       int64
	ParticipantID int64
	Feedback      string
	CreatedAt     time.Time

	// Optional: filled by joined reads for display.
	Participant *Participant
	EventTitle  string
}

// HasFeedback reports whether feedback was attached.
func (r *Registration) HasFeedback() bool {
	return r.Feedback != ""
}
