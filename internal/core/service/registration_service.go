package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// Mailer abstracts the outbound email transport (SMTP).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RegistrationService manages invite tokens and registration links.
type RegistrationService struct {
	invites     ports.RegistrationRepository
	mailer      Mailer
	frontendURL string
	log         zerolog.Logger
}

func NewRegistrationService(invites ports.RegistrationRepository, mailer Mailer, frontendURL string, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		invites:     invites,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

// Generate creates the invite and emails the registration link. When the send
// fails, the just-created invite is deleted again so HR can simply retry.
func (s *RegistrationService) Generate(ctx context.Context, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return domain.ErrInvalidPatch
	}

	_, err := s.invites.FindSentByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrInviteExists
	case !errors.Is(err, domain.ErrInviteNotFound):
		return err
	}

	reg := &domain.Registration{
		Email:     email,
		Name:      name,
		Token:     newInviteToken(),
		Status:    domain.InviteSent,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.invites.Create(ctx, reg)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/register?token=%s&email=%s", s.frontendURL, created.Token, url.QueryEscape(email))
	body := fmt.Sprintf(
		"Hello %s,\n\nWelcome to the team! Please use the following link to complete your registration:\n\n%s\n\nNote: this link is valid for 3 hours only.",
		name, link,
	)

	if err := s.mailer.Send(ctx, email, "Action Required: Your Registration Link", body); err != nil {
		if delErr := s.invites.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("email", email).Msg("failed to delete invite after email failure")
		}
		return fmt.Errorf("send registration email: %w", err)
	}

	s.log.Info().Str("email", email).Msg("registration link sent")
	return nil
}

// Verify is a read-only validity check; it never mutates the invite.
func (s *RegistrationService) Verify(ctx context.Context, token string) (*ports.InviteVerification, error) {
	if strings.TrimSpace(token) == "" {
		return &ports.InviteVerification{Valid: false, Reason: "missing_token"}, nil
	}

	reg, err := s.invites.FindByToken(ctx, token)
	switch {
	case errors.Is(err, domain.ErrInviteNotFound):
		return &ports.InviteVerification{Valid: false, Reason: "expired_or_invalid"}, nil
	case err != nil:
		return nil, err
	}

	if reg.Status != domain.InviteSent {
		return &ports.InviteVerification{Valid: false, Reason: "already_used"}, nil
	}

	return &ports.InviteVerification{Valid: true, Email: reg.Email, Name: reg.Name}, nil
}

func (s *RegistrationService) History(ctx context.Context) ([]*domain.Registration, error) {
	return s.invites.List(ctx)
}

// newInviteToken returns 40 hex chars of cryptographic randomness.
func newInviteToken() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived value rather than panic during invite generation.
		return fmt.Sprintf("%040x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
