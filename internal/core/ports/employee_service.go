package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// EmployeeService implements the HR employee directory.
type EmployeeService interface {
	// List returns all employees sorted by last name.
	List(ctx context.Context) ([]*domain.Employee, error)
	// Search matches q case-insensitively against first, last, and preferred
	// names. Regex metacharacters in q are treated literally.
	Search(ctx context.Context, q string) ([]*domain.Employee, error)
	Detail(ctx context.Context, employeeID string) (*domain.Employee, error)
}
