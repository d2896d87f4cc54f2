package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// SignupInput carries everything needed to create an account from an invite.
type SignupInput struct {
	Username          string
	Email             string
	Password          string
	RegistrationToken string
}

// AuthResult is returned by both signup and login.
type AuthResult struct {
	Token string
	User  *domain.User
	// OnboardingStatus is populated for employee-role logins so the client can
	// route straight to the right view. not_started when no profile exists.
	OnboardingStatus domain.ApplicationStatus
}

// AuthService implements account creation and token issuance.
type AuthService interface {
	// Signup consumes a registration token and creates an employee account.
	// Token/email/status mismatch yields domain.ErrInviteInvalid.
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
