package database

import (
	"context"
	"fmt"
	"time"

	"github.com/event-registration/app/internal/auth"
	"github.com/event-registration/app/internal/models"
)

const userColumns = "id, email, password_hash, created_at"

// CreateUser hashes the password and inserts a new user into the database.
// A duplicate email yields ErrEmailTaken.
func CreateUser(ctx context.Context, db *DB, email string, password string) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = db.QueryRowContext(ctx,
		db.Rebind("INSERT INTO users(email, password_hash, created_at) VALUES(?, ?, ?) RETURNING id"),
		email, hashedPassword, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return GetUserByID(ctx, db, id)
}

// GetUserByEmail retrieves a user by their email address.
func GetUserByEmail(ctx context.Context, db *DB, email string) (*models.User, error) {
	row := db.QueryRowContext(ctx, db.Rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	return scanUser(row)
}

// GetUserByID retrieves a user by their ID.
func GetUserByID(ctx context.Context, db *DB, id int64) (*models.User, error) {
	row := db.QueryRowContext(ctx, db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	return scanUser(row)
}

// EmailTakenByOther reports whether email belongs to an account other than userID.
func EmailTakenByOther(ctx context.Context, db *DB, email string, userID int64) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		db.Rebind("SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?"),
		email, userID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateAccount sets the user's email and, when newPassword is not empty,
// replaces the password hash. Both changes commit together.
func UpdateAccount(ctx context.Context, db *DB, userID int64, email string, newPassword string) (*models.User, error) {
	var hashed string
	if newPassword != "" {
		var err error
		if hashed, err = auth.HashPassword(newPassword); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, db.Rebind("UPDATE users SET email = ? WHERE id = ?"), email, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update email: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	if hashed != "" {
		if _, err := tx.ExecContext(ctx, db.Rebind("UPDATE users SET password_hash = ? WHERE id = ?"), hashed, userID); err != nil {
			return nil, fmt.Errorf("update password: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return GetUserByID(ctx, db, userID)
}

// SetPassword replaces the password hash, used by the reset flow.
func SetPassword(ctx context.Context, db *DB, userID int64, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res, err := db.ExecContext(ctx, db.Rebind("UPDATE users SET password_hash = ? WHERE id = ?"), hashed, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}
