package models

import "time"

type Event struct {
	ID          int64
	CreatorID   int64
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Banner      string // media path relative to the media root, "" when absent
	CreatedAt   time.Time

	// Registered is filled by list queries that join the registration count.
	Registered int
}

// OwnedBy reports whether userID created the event.
func (e *Event) OwnedBy(userID int64) bool {
	return e != nil && userID != 0 && e.CreatorID == userID
}

// Remaining returns the number of spots left, never below zero.
func (e *Event) Remaining() int {
	if n := e.Capacity - e.Registered; n > 0 {
		return n
	}
	return 0
}

// IsFull reports whether the registration count has reached the capacity.
func (e *Event) IsFull() bool {
	return e.Registered >= e.Capacity
}
