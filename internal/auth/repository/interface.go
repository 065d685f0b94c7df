package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthRepository defines the account storage operations the auth service
// depends on.
type AuthRepository interface {
	CreateUser(ctx context.Context, u NewUser) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
	// Taken reports whether the email or username is already registered.
	Taken(ctx context.Context, email, username string) (bool, error)

	// RecordFailedLogin counts a failed attempt and locks the account until
	// lockUntil once maxAttempts is reached. An expired lock restarts the
	// count.
	RecordFailedLogin(ctx context.Context, userID uuid.UUID, now time.Time, maxAttempts int, lockUntil time.Time) error
	// RecordLogin clears the failure count and stamps the last login.
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
