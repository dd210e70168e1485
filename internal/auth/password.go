package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/dns-auth/token-service/internal/domain"
)

// UserLookup finds a user and its granted roles by username.
// It returns domain.ErrUserNotFound when nothing matches.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CredentialVerifier checks a plaintext password against a stored hash.
type CredentialVerifier interface {
	Verify(plain, hash string) bool
}

// BcryptVerifier verifies bcrypt hashes.
type BcryptVerifier struct{}

// Verify reports whether plain matches hash.
func (BcryptVerifier) Verify(plain, hash string) bool {
	return ComparePassword(hash, plain) == nil
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
