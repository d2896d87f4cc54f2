package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// AuthService implements invite-based signup and login.
type AuthService struct {
	users     ports.UserRepository
	invites   ports.RegistrationRepository
	employees ports.EmployeeRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	invites ports.RegistrationRepository,
	employees ports.EmployeeRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		invites:   invites,
		employees: employees,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup consumes the registration token and creates the employee account.
// The token flip and the user insert are two writes; when the insert fails the
// flip is compensated so the invite stays usable.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.RegistrationToken == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !validPassword(input.Password) {
		return nil, domain.ErrPasswordPolicy
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	consumed, err := s.invites.Consume(ctx, input.RegistrationToken, email)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrInviteInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		Role:         domain.RoleEmployee,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// The invite was already flipped to used; put it back.
		if relErr := s.invites.Release(ctx, input.RegistrationToken); relErr != nil {
			s.log.Error().Err(relErr).Str("email", email).Msg("failed to release registration token after signup failure")
		}
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", email).Msg("employee account created")

	return &ports.AuthResult{
		Token:            token,
		User:             created,
		OnboardingStatus: domain.ApplicationNotStarted,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	result := &ports.AuthResult{Token: token, User: user}
	if user.Role == domain.RoleEmployee {
		result.OnboardingStatus = domain.ApplicationNotStarted
		emp, err := s.employees.FindByUserID(ctx, user.ID)
		switch {
		case err == nil:
			result.OnboardingStatus = emp.ApplicationStatus
		case !errors.Is(err, domain.ErrEmployeeNotFound):
			return nil, err
		}
	}

	return result, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validPassword enforces the account password policy: at least 6 characters
// containing an upper, a lower, a digit, and a symbol.
func validPassword(p string) bool {
	if len(p) < 6 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
