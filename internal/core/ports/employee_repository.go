package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// EmployeeRepository defines persistence for onboarding profiles.
type EmployeeRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// Upsert creates or replaces the profile keyed by user_id and returns the
	// stored document.
	Upsert(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	// UpdateFields applies an allow-listed partial update ($set semantics,
	// dotted field paths) and returns the updated profile. The service layer
	// owns the allow-listing; arbitrary client keys never reach this call.
	UpdateFields(ctx context.Context, userID string, fields map[string]any) (*domain.Employee, error)
	// UpdateApplicationStatus conditionally moves the application from one
	// status to another in a single write. It returns
	// domain.ErrEmployeeNotFound when no profile has the id and
	// domain.ErrApplicationNotPending when the profile exists but is not in
	// the `from` state (e.g. a concurrent reviewer got there first).
	UpdateApplicationStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, feedback string) (*domain.Employee, error)
	// List returns all profiles sorted by last name.
	List(ctx context.Context) ([]*domain.Employee, error)
	// ListByStatuses returns profiles whose application is in any of the given
	// states, newest first.
	ListByStatuses(ctx context.Context, statuses []domain.ApplicationStatus) ([]*domain.Employee, error)
	// Search matches q case-insensitively against first, last, and preferred
	// names.
	Search(ctx context.Context, q string) ([]*domain.Employee, error)
	// ListSponsored returns employees on the sponsored-visa track, sorted by
	// last name.
	ListSponsored(ctx context.Context) ([]*domain.Employee, error)
}
