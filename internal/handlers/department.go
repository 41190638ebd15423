package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/utils"
)

type DepartmentHandler struct {
	departmentService *services.DepartmentService
	employeeService   *services.EmployeeService
}

func NewDepartmentHandler(departmentService *services.DepartmentService, employeeService *services.EmployeeService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		employeeService:   employeeService,
	}
}

type departmentRequest struct {
	Name           utils.TrimmedString `json:"name" binding:"required,notblank,min=2,max=100"`
	OfficeLocation utils.TrimmedString `json:"office_location" binding:"required,notblank,min=2,max=200"`
}

func (r departmentRequest) input() services.DepartmentInput {
	return services.DepartmentInput{
		Name:           r.Name.String(),
		OfficeLocation: r.OfficeLocation.String(),
	}
}

// ListDepartments returns all departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.ListDepartments(c.Request.Context())
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTOs(departments))
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	department, err := h.departmentService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	if department == nil {
		apierrors.NotFound(c, "Department not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req departmentRequest
	if !bindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.CreateDepartment(c.Request.Context(), req.input())
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*department))
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req departmentRequest
	if !bindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.UpdateDepartment(c.Request.Context(), id, req.input())
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	if department == nil {
		apierrors.NotFound(c, "Department not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*department))
}

// DeleteDepartment deletes a department that nothing references any more
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.departmentService.DeleteDepartment(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Department not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted"})
}

// GetTotalBudget returns the sum of the department's project budgets
func (h *DepartmentHandler) GetTotalBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	total, err := h.departmentService.TotalProjectBudget(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalBudgetDTO{DepartmentID: id, TotalBudget: total})
}

// ListEmployees returns the employees of a department
func (h *DepartmentHandler) ListEmployees(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	employees, err := h.employeeService.ListByDepartment(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTOs(employees))
}

func respondDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDepartmentNotFound):
		apierrors.NotFound(c, "Department not found")
	case errors.Is(err, services.ErrDepartmentHasDependents):
		apierrors.Conflict(c, "Department still has employees or projects")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "Internal server error")
	}
}
