package database

import (
	"context"
	"fmt"
)

type migration struct {
	name   string
	sqlite string
	pgx    string
}

// migrations run in order, each once, recorded in _migrations.
var migrations = []migration{
	{
		name: "0001_initial_schema",
		sqlite: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at DATETIME NOT NULL
			);

			CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				creator_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				event_date DATE NOT NULL,
				location TEXT NOT NULL,
				capacity INTEGER NOT NULL CHECK (capacity >= 0),
				banner TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL
			);

			CREATE TABLE IF NOT EXISTS participants (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT NOT NULL,
				gender TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS registrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				participant_id INTEGER NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
				feedback TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL,
				UNIQUE (event_id, participant_id)
			);

			CREATE INDEX IF NOT EXISTS idx_events_creator ON events(creator_id);
			CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations(event_id);
		`,
		pgx: `
			CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);

			CREATE TABLE IF NOT EXISTS events (
				id BIGSERIAL PRIMARY KEY,
				creator_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				event_date DATE NOT NULL,
				location TEXT NOT NULL,
				capacity INTEGER NOT NULL CHECK (capacity >= 0),
				banner TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL
			);

			CREATE TABLE IF NOT EXISTS participants (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT NOT NULL,
				gender TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS registrations (
				id BIGSERIAL PRIMARY KEY,
				event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
				feedback TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL,
				UNIQUE (event_id, participant_id)
			);

			CREATE INDEX IF NOT EXISTS idx_events_creator ON events(creator_id);
			CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations(event_id);
		`,
	},
}

func (db *DB) migrate(ctx context.Context) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			name TEXT PRIMARY KEY,
			run_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := tx.QueryRowContext(ctx, db.Rebind(`SELECT COUNT(*) FROM _migrations WHERE name = ?`), m.name).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", m.name, err)
		}
		if count > 0 {
			continue
		}

		stmt := m.sqlite
		if db.driver == DriverPostgres {
			stmt = m.pgx
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration %s: %w", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, db.Rebind(`INSERT INTO _migrations (name) VALUES (?)`), m.name); err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
	}

	return tx.Commit()
}
