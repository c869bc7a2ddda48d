package identity

import (
	"context"
	"time"

	"github.com/bissquit/hr-portal/internal/domain"
)

// Repository defines the user directory operations.
// All operations are single-row; no multi-record transactions.
type Repository interface {
	// CreateUser persists a new user. A concurrent insert for the same email
	// must surface as ErrEmailExists via the unique constraint.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail returns ErrUserNotFound when no record matches.
	// Email matching is exact, as stored.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID returns ErrUserNotFound when no record matches.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// MarkEmailVerified sets email_verified_at for an unverified user.
	// Returns false when the user is already verified, so a concurrent
	// double-activation still reports "already activated".
	MarkEmailVerified(ctx context.Context, id string, at time.Time) (bool, error)
}
