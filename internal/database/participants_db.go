package database

import (
	"context"
	"fmt"

	"github.com/event-registration/app/internal/models"
)

// registrationSelect joins a registration with its participant and event title.
const registrationSelect = `
	SELECT r.id, r.event_id, r.participant_id, r.feedback, r.created_at,
	       p.id, p.name, p.email, p.phone, p.gender, e.title
	FROM registrations r
	JOIN participants p ON r.participant_id = p.id
	JOIN events e ON r.event_id = e.id`

// GetParticipantByID retrieves a participant by ID.
func GetParticipantByID(ctx context.Context, db *DB, id int64) (*models.Participant, error) {
	p := &models.Participant{}
	err := db.QueryRowContext(ctx,
		db.Rebind("SELECT id, name, email, phone, gender FROM participants WHERE id = ?"), id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Gender)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// ListRegistrants retrieves the registrations of an event with their
// participant details, ordered by participant name.
func ListRegistrants(ctx context.Context, db *DB, eventID int64) ([]*models.Registration, error) {
	return queryRegistrations(ctx, db, registrationSelect+`
		WHERE r.event_id = ?
		ORDER BY p.name ASC, r.id ASC`, eventID)
}

// ListRegistrationsByEmail retrieves the registrations whose participant
// email matches, newest first. Matching ignores case.
func ListRegistrationsByEmail(ctx context.Context, db *DB, email string) ([]*models.Registration, error) {
	return queryRegistrations(ctx, db, registrationSelect+`
		WHERE LOWER(p.email) = LOWER(?)
		ORDER BY r.created_at DESC, r.id DESC`, email)
}

func queryRegistrations(ctx context.Context, db *DB, query string, args ...any) ([]*models.Registration, error) {
	rows, err := db.QueryContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func scanRegistration(row interface{ Scan(...any) error }) (*models.Registration, error) {
	reg := &models.Registration{Participant: &models.Participant{}}
	p := reg.Participant
	err := row.Scan(&reg.ID, &reg.EventID, &reg.ParticipantID, &reg.Feedback, &reg.CreatedAt,
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Gender, &reg.EventTitle)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
