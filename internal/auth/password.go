package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/wellness-tracker/internal/apperror"
)

// bcrypt stores the salt and cost inside the hash itself:
//
//	$2a$12$<22-char salt><31-char hash>
//
// so a single password_hash column is all the database needs.

// defaultCost is the bcrypt work factor, roughly 250ms per hash on a modern
// server. Tests drop it to bcrypt.MinCost.
const defaultCost = 12

// maxPasswordBytes is bcrypt's input limit. Longer inputs are silently
// truncated by the algorithm, so they are rejected up front.
const maxPasswordBytes = 72

// ErrInvalidPassword is returned by Verify when the password doesn't match.
var ErrInvalidPassword = errors.New("auth: invalid password")

// PasswordService hashes and verifies passwords. The cost is a field so
// tests can use a cheap one.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost creates a PasswordService with a custom cost.
// Use bcrypt.MinCost (4) in tests; never in production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
// Passwords over 72 bytes fail with an apperror.ErrValidation.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", apperror.ValidationFailed("password", "password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
// The comparison is constant-time inside bcrypt.
//
// Returns nil on match and ErrInvalidPassword on mismatch. A malformed hash
// is reported as a distinct wrapped error.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
