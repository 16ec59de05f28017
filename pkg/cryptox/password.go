package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for new hashes.
const BcryptCost = bcrypt.DefaultCost

// maxPasswordBytes is the bcrypt input limit. Longer inputs are truncated
// on both hash and verify so that the two always agree.
const maxPasswordBytes = 72

var (
	ErrMismatch    = errors.New("password does not match")
	ErrInvalidHash = errors.New("invalid password hash")
)

// dummyHash is compared against when no real hash exists so that callers can
// keep response timing uniform.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), BcryptCost)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(clamp(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// It returns ErrMismatch for a wrong password and ErrInvalidHash when the
// stored value is not a bcrypt hash at all.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), clamp(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
}

// BurnPasswordCheck does the same amount of work as a failed VerifyPassword.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, clamp(password))
}

func clamp(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
