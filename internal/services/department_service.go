package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
)

var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrInvalidDepartment       = errors.New("department does not exist")
	ErrDepartmentHasDependents = errors.New("department still has employees or projects")
)

// DepartmentService handles department business logic
type DepartmentService struct {
	departments repository.DepartmentRepository
}

func NewDepartmentService(departments repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// DepartmentInput holds the writable fields of a department
type DepartmentInput struct {
	Name           string
	OfficeLocation string
}

func (s *DepartmentService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// GetDepartment returns nil when the department does not exist
func (s *DepartmentService) GetDepartment(ctx context.Context, id uint64) (*models.Department, error) {
	department, err := s.departments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return department, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, input DepartmentInput) (*models.Department, error) {
	department := &models.Department{
		Name:           strings.TrimSpace(input.Name),
		OfficeLocation: strings.TrimSpace(input.OfficeLocation),
	}

	if err := s.departments.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return department, nil
}

// UpdateDepartment returns nil when the department does not exist
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, input DepartmentInput) (*models.Department, error) {
	department, err := s.GetDepartment(ctx, id)
	if err != nil || department == nil {
		return nil, err
	}

	department.Name = strings.TrimSpace(input.Name)
	department.OfficeLocation = strings.TrimSpace(input.OfficeLocation)

	if err := s.departments.Update(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return department, nil
}

// DeleteDepartment refuses to delete a department that employees or projects
// still belong to. It reports false when the department does not exist.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) (bool, error) {
	dependents, err := s.departments.CountDependents(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to count department dependents: %w", err)
	}
	if dependents > 0 {
		return false, ErrDepartmentHasDependents
	}

	deleted, err := s.departments.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentInUse) {
			return false, ErrDepartmentHasDependents
		}
		return false, fmt.Errorf("failed to delete department: %w", err)
	}
	return deleted, nil
}

// TotalProjectBudget sums the budgets of the department's projects
func (s *DepartmentService) TotalProjectBudget(ctx context.Context, id uint64) (decimal.Decimal, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return decimal.Zero, err
	}

	total, err := s.departments.TotalProjectBudget(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum project budgets: %w", err)
	}
	return total, nil
}

func (s *DepartmentService) ensureExists(ctx context.Context, id uint64) error {
	exists, err := s.departments.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return ErrDepartmentNotFound
	}
	return nil
}
