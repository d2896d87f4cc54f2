package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// InviteVerification is the read-only validity check result for an invite
// token. Reason mirrors the values the registration page switches on.
type InviteVerification struct {
	Valid  bool
	Reason string // missing_token | expired_or_invalid | already_used
	Email  string
	Name   string
}

// RegistrationService manages HR-issued invite tokens.
type RegistrationService interface {
	// Generate creates an invite for the email and sends the registration
	// link. An existing `sent` invite for the same email yields
	// domain.ErrInviteExists. When the email send fails the invite is deleted
	// again and the send error is returned.
	Generate(ctx context.Context, email, name string) error
	// Verify never mutates state.
	Verify(ctx context.Context, token string) (*InviteVerification, error)
	// History returns every invite ever issued, newest first.
	History(ctx context.Context) ([]*domain.Registration, error)
}
