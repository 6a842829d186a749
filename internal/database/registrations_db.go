package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/event-registration/app/internal/models"
)

// RegisterParticipant runs the registration workflow for eventID in a single
// transaction: it refuses the event's creator (requesterID, 0 when
// anonymous), refuses once the registration count reaches the capacity,
// refuses an email already registered for the event, and otherwise stores a
// new participant and its registration.
func RegisterParticipant(ctx context.Context, db *DB, eventID, requesterID int64, participant *models.Participant) (*models.Registration, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback()

	var creatorID int64
	var capacity int
	err = tx.QueryRowContext(ctx,
		db.Rebind("SELECT creator_id, capacity FROM events WHERE id = ?"+db.lockForUpdate()), eventID,
	).Scan(&creatorID, &capacity)
	if err != nil {
		return nil, notFound(err)
	}

	if requesterID != 0 && requesterID == creatorID {
		return nil, ErrOwnerCannotRegister
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		db.Rebind("SELECT COUNT(*) FROM registrations WHERE event_id = ?"), eventID,
	).Scan(&count); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if count >= capacity {
		return nil, ErrEventFull
	}

	var dup int
	if err := tx.QueryRowContext(ctx, db.Rebind(`
		SELECT COUNT(*) FROM registrations r
		JOIN participants p ON r.participant_id = p.id
		WHERE r.event_id = ? AND LOWER(p.email) = LOWER(?)`),
		eventID, strings.TrimSpace(participant.Email),
	).Scan(&dup); err != nil {
		return nil, fmt.Errorf("check duplicate registration: %w", err)
	}
	if dup > 0 {
		return nil, ErrAlreadyRegistered
	}

	participantID, err := insertParticipant(ctx, db, tx, participant)
	if err != nil {
		return nil, err
	}
	reg, err := insertRegistration(ctx, db, tx, eventID, participantID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	stored := *participant
	stored.ID = participantID
	reg.Participant = &stored
	return reg, nil
}

// GetRegistrationByID retrieves a registration with its participant and
// event title.
func GetRegistrationByID(ctx context.Context, db *DB, id int64) (*models.Registration, error) {
	row := db.QueryRowContext(ctx, db.Rebind(registrationSelect+" WHERE r.id = ?"), id)
	reg, err := scanRegistration(row)
	if err != nil {
		return nil, notFound(err)
	}
	return reg, nil
}

// SetFeedback attaches feedback text to a registration, replacing any
// previous feedback.
func SetFeedback(ctx context.Context, db *DB, registrationID int64, feedback string) error {
	res, err := db.ExecContext(ctx, db.Rebind("UPDATE registrations SET feedback = ? WHERE id = ?"), feedback, registrationID)
	if err != nil {
		return fmt.Errorf("set feedback: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertParticipant(ctx context.Context, db *DB, q execQuerier, p *models.Participant) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		db.Rebind("INSERT INTO participants(name, email, phone, gender) VALUES(?, ?, ?, ?) RETURNING id"),
		p.Name, strings.TrimSpace(p.Email), p.Phone, p.Gender,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert participant: %w", err)
	}
	return id, nil
}

// insertRegistration links a participant to an event. The (event,
// participant) pair is unique; a second link yields ErrAlreadyRegistered.
func insertRegistration(ctx context.Context, db *DB, q execQuerier, eventID, participantID int64) (*models.Registration, error) {
	reg := &models.Registration{
		EventID:       eventID,
		ParticipantID: participantID,
		CreatedAt:     time.Now().UTC(),
	}
	err := q.QueryRowContext(ctx,
		db.Rebind("INSERT INTO registrations(event_id, participant_id, created_at) VALUES(?, ?, ?) RETURNING id"),
		eventID, participantID, reg.CreatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

// IsRegistrationError reports whether err is one of the workflow refusals
// that should be shown to the user rather than logged as a failure.
func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrEventFull) ||
		errors.Is(err, ErrOwnerCannotRegister) ||
		errors.Is(err, ErrAlreadyRegistered)
}
