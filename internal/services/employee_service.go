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
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email is already used by another employee")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
}

func NewEmployeeService(employees repository.EmployeeRepository, departments repository.DepartmentRepository) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		departments: departments,
	}
}

// EmployeeInput holds the writable fields of an employee
type EmployeeInput struct {
	FirstName    string
	LastName     string
	Email        string
	Salary       decimal.Decimal
	DepartmentID uint64
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns nil when the employee does not exist
func (s *EmployeeService) GetEmployee(ctx context.Context, id uint64) (*models.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// CreateEmployee fails with ErrInvalidDepartment or ErrEmailTaken on bad references
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (*models.Employee, error) {
	input = normalizeEmployeeInput(input)
	if err := s.validate(ctx, input, 0); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Salary:       input.Salary,
		DepartmentID: input.DepartmentID,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return s.GetEmployee(ctx, employee.ID)
}

// UpdateEmployee returns nil when the employee does not exist
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint64, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil || employee == nil {
		return nil, err
	}

	input = normalizeEmployeeInput(input)
	if err := s.validate(ctx, input, id); err != nil {
		return nil, err
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.Email = input.Email
	employee.Salary = input.Salary
	employee.DepartmentID = input.DepartmentID
	employee.Department = nil

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return s.GetEmployee(ctx, id)
}

// DeleteEmployee removes the employee and its assignments. It reports false
// when the employee does not exist.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.employees.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}
	return deleted, nil
}

func (s *EmployeeService) ListByDepartment(ctx context.Context, departmentID uint64) ([]models.Employee, error) {
	exists, err := s.departments.Exists(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return nil, ErrDepartmentNotFound
	}

	employees, err := s.employees.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) validate(ctx context.Context, input EmployeeInput, selfID uint64) error {
	if input.Salary.IsNegative() {
		return ErrNegativeAmount
	}

	exists, err := s.departments.Exists(ctx, input.DepartmentID)
	if err != nil {
		return fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return ErrInvalidDepartment
	}

	taken, err := s.employees.EmailTaken(ctx, input.Email, selfID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func normalizeEmployeeInput(input EmployeeInput) EmployeeInput {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	return input
}
