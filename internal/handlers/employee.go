package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/utils"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
	projectService  *services.ProjectService
}

func NewEmployeeHandler(employeeService *services.EmployeeService, projectService *services.ProjectService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		projectService:  projectService,
	}
}

type employeeRequest struct {
	FirstName    utils.TrimmedString `json:"first_name" binding:"required,notblank,min=2,max=50"`
	LastName     utils.TrimmedString `json:"last_name" binding:"required,notblank,min=2,max=50"`
	Email        utils.TrimmedString `json:"email" binding:"required,email,max=255"`
	Salary       *decimal.Decimal    `json:"salary" binding:"required,min=0"`
	DepartmentID uint64              `json:"department_id" binding:"required"`
}

func (r employeeRequest) input() services.EmployeeInput {
	return services.EmployeeInput{
		FirstName:    r.FirstName.String(),
		LastName:     r.LastName.String(),
		Email:        r.Email.String(),
		Salary:       *r.Salary,
		DepartmentID: r.DepartmentID,
	}
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTOs(employees))
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}
	if employee == nil {
		apierrors.NotFound(c, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req.input())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, req.input())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}
	if employee == nil {
		apierrors.NotFound(c, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.employeeService.DeleteEmployee(c.Request.Context(), id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// ListProjects returns the projects the employee is assigned to
func (h *EmployeeHandler) ListProjects(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListByEmployee(c.Request.Context(), id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, "Employee not found")
	case errors.Is(err, services.ErrInvalidDepartment),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNegativeAmount):
		apierrors.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "Internal server error")
	}
}
