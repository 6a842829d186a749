// Package session maps opaque session tokens to user IDs.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Store keeps login sessions. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

func newToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// DefaultTTL is used when a store is built with a non-positive TTL.
const DefaultTTL = 24 * time.Hour
