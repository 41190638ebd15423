package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/models"
)

func init() {
	// money is rendered as a JSON number
	decimal.MarshalJSONWithoutQuotes = true
}

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	OfficeLocation string    `json:"office_location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TotalBudgetDTO is the sum of project budgets in a department
type TotalBudgetDTO struct {
	DepartmentID uint64          `json:"department_id"`
	TotalBudget  decimal.Decimal `json:"total_budget"`
}

func ToDepartmentDTO(department models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:             department.ID,
		Name:           department.Name,
		OfficeLocation: department.OfficeLocation,
		CreatedAt:      department.CreatedAt,
		UpdatedAt:      department.UpdatedAt,
	}
}

func ToDepartmentDTOs(departments []models.Department) []DepartmentDTO {
	result := make([]DepartmentDTO, len(departments))
	for i, department := range departments {
		result[i] = ToDepartmentDTO(department)
	}
	return result
}
