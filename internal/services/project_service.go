package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectCreationFailed = errors.New("failed to create project")
	ErrInvalidEmployee       = errors.New("employee does not exist")
)

// ProjectService handles project business logic, including code assignment
// on creation and employee assignments.
type ProjectService struct {
	projects    repository.ProjectRepository
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	codes       CodeProvider
	logger      *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	departments repository.DepartmentRepository,
	employees repository.EmployeeRepository,
	codes CodeProvider,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projects:    projects,
		departments: departments,
		employees:   employees,
		codes:       codes,
		logger:      logger,
	}
}

// ProjectInput holds the writable fields of a project. The code is never
// writable.
type ProjectInput struct {
	Name         string
	Budget       decimal.Decimal
	DepartmentID uint64
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns nil when the project does not exist
func (s *ProjectService) GetProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject persists the project with the code <random><id>, or nothing
// at all. Any failure after validation is reported as
// ErrProjectCreationFailed wrapping the cause.
func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:         strings.TrimSpace(input.Name),
		Budget:       input.Budget,
		DepartmentID: input.DepartmentID,
	}

	if err := s.projects.CreateWithCode(ctx, project, s.codes.Generate); err != nil {
		s.logger.Error("project creation rolled back",
			zap.String("name", project.Name),
			zap.Uint64("department_id", project.DepartmentID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProjectCreationFailed, err)
	}

	s.logger.Info("project created",
		zap.Uint64("project_id", project.ID),
		zap.String("code", project.Code))

	// The row is committed at this point. A failed reload only costs the
	// department name in the response.
	created, err := s.GetProject(ctx, project.ID)
	if err != nil {
		s.logger.Warn("failed to reload created project",
			zap.Uint64("project_id", project.ID),
			zap.Error(err))
		return project, nil
	}
	if created == nil {
		return project, nil
	}
	return created, nil
}

// UpdateProject returns nil when the project does not exist
func (s *ProjectService) UpdateProject(ctx context.Context, id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil || project == nil {
		return nil, err
	}

	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(input.Name)
	project.Budget = input.Budget
	project.DepartmentID = input.DepartmentID
	project.Department = nil

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(ctx, id)
}

// DeleteProject removes the project and its assignments. It reports false
// when the project does not exist.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.projects.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return deleted, nil
}

// ListByEmployee lists the projects an employee is assigned to
func (s *ProjectService) ListByEmployee(ctx context.Context, employeeID uint64) ([]models.Project, error) {
	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	projects, err := s.projects.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee projects: %w", err)
	}
	return projects, nil
}

// ListEmployees lists the employees assigned to a project
func (s *ProjectService) ListEmployees(ctx context.Context, projectID uint64) ([]models.Employee, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}

	employees, err := s.employees.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project employees: %w", err)
	}
	return employees, nil
}

// AssignEmployee assigns an employee to a project with a role. It reports
// false, without error, when the employee is already on the project.
func (s *ProjectService) AssignEmployee(ctx context.Context, projectID, employeeID uint64, role string) (bool, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return false, err
	}

	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return false, ErrInvalidEmployee
	}

	assigned, err := s.projects.Assign(ctx, employeeID, projectID, strings.TrimSpace(role))
	if err != nil {
		return false, fmt.Errorf("failed to assign employee: %w", err)
	}

	if assigned {
		s.logger.Info("employee assigned to project",
			zap.Uint64("project_id", projectID),
			zap.Uint64("employee_id", employeeID))
	}
	return assigned, nil
}

// RemoveEmployee removes an employee from a project. It reports false when
// the employee was not assigned.
func (s *ProjectService) RemoveEmployee(ctx context.Context, projectID, employeeID uint64) (bool, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return false, err
	}

	removed, err := s.projects.Unassign(ctx, employeeID, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to remove employee: %w", err)
	}
	return removed, nil
}

func (s *ProjectService) validate(ctx context.Context, input ProjectInput) error {
	if input.Budget.IsNegative() {
		return ErrNegativeAmount
	}

	exists, err := s.departments.Exists(ctx, input.DepartmentID)
	if err != nil {
		return fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return ErrInvalidDepartment
	}
	return nil
}

func (s *ProjectService) ensureProject(ctx context.Context, id uint64) error {
	exists, err := s.projects.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}
