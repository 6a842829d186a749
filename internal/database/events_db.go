package database

import (
	"context"
	"fmt"
	"time"

	"github.com/event-registration/app/internal/models"
)

// eventSelect reads an event together with its current registration count.
const eventSelect = `
	SELECT e.id, e.creator_id, e.title, e.description, e.event_date, e.location,
	       e.capacity, e.banner, e.created_at,
	       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id)
	FROM events e`

// CreateEvent inserts a new event into the events table.
func CreateEvent(ctx context.Context, db *DB, event *models.Event) (*models.Event, error) {
	var id int64
	err := db.QueryRowContext(ctx, db.Rebind(`
		INSERT INTO events(creator_id, title, description, event_date, location, capacity, banner, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		event.CreatorID, event.Title, event.Description, dateOnly(event.Date), event.Location,
		event.Capacity, event.Banner, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	// Read it back so DB-side values are populated.
	return GetEventByID(ctx, db, id)
}

// GetEventByID retrieves an event by its ID.
func GetEventByID(ctx context.Context, db *DB, id int64) (*models.Event, error) {
	row := db.QueryRowContext(ctx, db.Rebind(eventSelect+" WHERE e.id = ?"), id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

// ListEvents retrieves all events, most distant date first.
func ListEvents(ctx context.Context, db *DB) ([]*models.Event, error) {
	rows, err := db.QueryContext(ctx, eventSelect+" ORDER BY e.event_date DESC, e.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent saves the editable fields of event. Creator and creation time
// never change.
func UpdateEvent(ctx context.Context, db *DB, event *models.Event) error {
	res, err := db.ExecContext(ctx, db.Rebind(`
		UPDATE events
		SET title = ?, description = ?, event_date = ?, location = ?, capacity = ?, banner = ?
		WHERE id = ?`),
		event.Title, event.Description, dateOnly(event.Date), event.Location, event.Capacity, event.Banner, event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event; its registrations go with it.
func DeleteEvent(ctx context.Context, db *DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind("DELETE FROM events WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRegistrations returns how many registrations an event holds.
func CountRegistrations(ctx context.Context, db *DB, eventID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, db.Rebind("SELECT COUNT(*) FROM registrations WHERE event_id = ?"), eventID).Scan(&count)
	return count, err
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(&event.ID, &event.CreatorID, &event.Title, &event.Description, &event.Date,
		&event.Location, &event.Capacity, &event.Banner, &event.CreatedAt, &event.Registered)
	if err != nil {
		return nil, err
	}
	event.Date = dateOnly(event.Date)
	return event, nil
}

// dateOnly truncates t to midnight UTC of its calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
