package service

import (
	"context"
	"strings"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// EmployeeService is the HR employee directory.
type EmployeeService struct {
	employees ports.EmployeeRepository
}

func NewEmployeeService(employees ports.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *EmployeeService) Search(ctx context.Context, q string) ([]*domain.Employee, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.ErrSearchQueryRequired
	}
	return s.employees.Search(ctx, q)
}

func (s *EmployeeService) Detail(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employees.FindByID(ctx, employeeID)
}
