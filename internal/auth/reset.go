package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/event-registration/app/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidResetToken covers malformed, expired, forged and stale tokens.
var ErrInvalidResetToken = errors.New("invalid or expired password reset token")

const resetAudience = "password-reset"

// ResetTokens issues and checks HS256 password reset tokens. A token carries
// the user id and a fingerprint of the password hash current at issue time,
// so it stops matching once the password changes.
type ResetTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// ResetClaims is the parsed content of a reset token.
type ResetClaims struct {
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// NewResetTokens signs reset tokens with secret; they expire after ttl.
func NewResetTokens(secret string, ttl time.Duration) *ResetTokens {
	return &ResetTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (t *ResetTokens) WithClock(now func() time.Time) *ResetTokens {
	t.now = now
	return t
}

// Issue signs a token for user.
func (t *ResetTokens) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := ResetClaims{
		Fingerprint: fingerprint(user.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Audience:  jwt.ClaimStrings{resetAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims.
func (t *ResetTokens) Parse(raw string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(resetAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResetToken, err)
	}
	return claims, nil
}

// UserID returns the subject as a user id.
func (c *ResetClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidResetToken
	}
	return id, nil
}

// Matches reports whether the token was issued for user's current password.
func (c *ResetClaims) Matches(user *models.User) bool {
	if user == nil {
		return false
	}
	return c.Subject == strconv.FormatInt(user.ID, 10) && c.Fingerprint == fingerprint(user.PasswordHash)
}

func fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
