package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/models"
)

// Lookups return (nil, nil) when the record does not exist. Deletes report
// whether a row was removed.

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)

	FindByID(ctx context.Context, id uint64) (*models.Department, error)

	Exists(ctx context.Context, id uint64) (bool, error)

	Create(ctx context.Context, department *models.Department) error

	Update(ctx context.Context, department *models.Department) error

	Delete(ctx context.Context, id uint64) (bool, error)

	// CountDependents counts employees and projects that still reference the department
	CountDependents(ctx context.Context, id uint64) (int64, error)

	// TotalProjectBudget sums the budgets of all projects in the department, zero when there are none
	TotalProjectBudget(ctx context.Context, id uint64) (decimal.Decimal, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)

	// FindByID finds an employee by ID with its department loaded
	FindByID(ctx context.Context, id uint64) (*models.Employee, error)

	Exists(ctx context.Context, id uint64) (bool, error)

	Create(ctx context.Context, employee *models.Employee) error

	Update(ctx context.Context, employee *models.Employee) error

	// Delete removes the employee together with its project assignments
	Delete(ctx context.Context, id uint64) (bool, error)

	// EmailTaken reports whether another employee (other than excludeID) uses email
	EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error)

	ListByDepartment(ctx context.Context, departmentID uint64) ([]models.Employee, error)

	// ListByProject lists the employees assigned to a project
	ListByProject(ctx context.Context, projectID uint64) ([]models.Employee, error)
}

// CodeGenerator produces the random part of a project code.
type CodeGenerator func(ctx context.Context) (string, error)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	List(ctx context.Context) ([]models.Project, error)

	// FindByID finds a project by ID with its department loaded
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	Exists(ctx context.Context, id uint64) (bool, error)

	// CreateWithCode inserts the project and assigns it the code
	// <generated><id> in the same transaction.
	CreateWithCode(ctx context.Context, project *models.Project, generate CodeGenerator) error

	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project together with its assignments
	Delete(ctx context.Context, id uint64) (bool, error)

	// ListByEmployee lists the projects an employee is assigned to
	ListByEmployee(ctx context.Context, employeeID uint64) ([]models.Project, error)

	// Assign creates the assignment unless the pair is already assigned.
	// It reports false, not an error, for an existing pair.
	Assign(ctx context.Context, employeeID, projectID uint64, role string) (bool, error)

	// Unassign removes the assignment and reports false when there was none.
	Unassign(ctx context.Context, employeeID, projectID uint64) (bool, error)
}
