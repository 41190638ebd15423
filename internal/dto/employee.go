package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID             uint64          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Salary         decimal.Decimal `json:"salary"`
	DepartmentID   uint64          `json:"department_id"`
	DepartmentName string          `json:"department_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	result := EmployeeDTO{
		ID:           employee.ID,
		FirstName:    employee.FirstName,
		LastName:     employee.LastName,
		FullName:     employee.FullName(),
		Email:        employee.Email,
		Salary:       employee.Salary,
		DepartmentID: employee.DepartmentID,
		CreatedAt:    employee.CreatedAt,
	}
	if employee.Department != nil {
		result.DepartmentName = employee.Department.Name
	}
	return result
}

func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	result := make([]EmployeeDTO, len(employees))
	for i, employee := range employees {
		result[i] = ToEmployeeDTO(employee)
	}
	return result
}
