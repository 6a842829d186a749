package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("securepassword")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "securepassword" {
		t.Fatalf("HashPassword() returned the plaintext")
	}

	t.Run("Correct Password", func(t *testing.T) {
		if err := CheckPassword(hash, "securepassword"); err != nil {
			t.Errorf("CheckPassword() with correct password error = %v, want nil", err)
		}
	})

	t.Run("Incorrect Password", func(t *testing.T) {
		err := CheckPassword(hash, "wrongpassword")
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("CheckPassword() with incorrect password error = %v, want ErrPasswordMismatch", err)
		}
	})
}

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     error
	}{
		{"valid", "longenough", "longenough", nil},
		{"exactly minimum", "12345678", "12345678", nil},
		{"mismatch", "longenough", "longenougH", ErrPasswordsDiffer},
		{"too short", "short", "short", ErrPasswordTooShort},
		{"multibyte counted as runes", "ããããããã", "ããããããã", ErrPasswordTooShort},
		{"bcrypt limit", strings.Repeat("a", MaxPasswordBytes), strings.Repeat("a", MaxPasswordBytes), nil},
		{"over bcrypt limit", strings.Repeat("a", MaxPasswordBytes+1), strings.Repeat("a", MaxPasswordBytes+1), ErrPasswordTooLong},
		{"multibyte over limit in bytes", strings.Repeat("ã", 40), strings.Repeat("ã", 40), ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateNewPassword(tt.password, tt.confirm); !errors.Is(got, tt.want) {
				t.Errorf("ValidateNewPassword() = %v; want %v", got, tt.want)
			}
		})
	}
}
