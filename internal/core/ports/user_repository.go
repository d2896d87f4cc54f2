package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Duplicate username or email yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether an account already claims either
	// identifier. Used for the pre-flight check before consuming an invite.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
