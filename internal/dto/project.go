package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	Budget         decimal.Decimal `json:"budget"`
	Code           string          `json:"code"`
	DepartmentID   uint64          `json:"department_id"`
	DepartmentName string          `json:"department_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AssignmentResultDTO reports whether an assign or unassign took effect
type AssignmentResultDTO struct {
	Success bool `json:"success"`
}

func ToProjectDTO(project models.Project) ProjectDTO {
	result := ProjectDTO{
		ID:           project.ID,
		Name:         project.Name,
		Budget:       project.Budget,
		Code:         project.Code,
		DepartmentID: project.DepartmentID,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}
	if project.Department != nil {
		result.DepartmentName = project.Department.Name
	}
	return result
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	result := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		result[i] = ToProjectDTO(project)
	}
	return result
}
