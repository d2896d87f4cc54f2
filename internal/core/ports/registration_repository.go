package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// RegistrationRepository defines persistence for invite tokens.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	FindByToken(ctx context.Context, token string) (*domain.Registration, error)
	// FindSentByEmail returns the currently valid invite for an email, or
	// domain.ErrInviteNotFound when none exists.
	FindSentByEmail(ctx context.Context, email string) (*domain.Registration, error)
	// Consume atomically flips (token, email, status=sent) to used and reports
	// whether a document was actually modified. A false result means the token
	// was missing, expired, already used, or bound to a different email.
	Consume(ctx context.Context, token, email string) (bool, error)
	// Release flips a consumed token back to sent. Compensating action for a
	// signup that failed after the token was consumed.
	Release(ctx context.Context, token string) error
	// Delete removes an invite outright. Compensating action for a generate
	// whose email send failed.
	Delete(ctx context.Context, id string) error
	// List returns all invites, newest first.
	List(ctx context.Context) ([]*domain.Registration, error)
}
