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

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Name         utils.TrimmedString `json:"name" binding:"required,notblank,min=2,max=100"`
	Budget       *decimal.Decimal    `json:"budget" binding:"required,min=0"`
	DepartmentID uint64              `json:"department_id" binding:"required"`
}

func (r projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Name:         r.Name.String(),
		Budget:       *r.Budget,
		DepartmentID: r.DepartmentID,
	}
}

type AssignEmployeeRequest struct {
	EmployeeID uint64              `json:"employee_id" binding:"required"`
	Role       utils.TrimmedString `json:"role" binding:"required,notblank,min=2,max=100"`
}

type UnassignEmployeeRequest struct {
	EmployeeID uint64 `json:"employee_id" binding:"required"`
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if project == nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project and assigns its generated code
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req.input())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject updates name, budget and department. The code never changes.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req.input())
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if project == nil {
		apierrors.NotFound(c, "Project not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.projectService.DeleteProject(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// ListEmployees returns the employees assigned to a project
func (h *ProjectHandler) ListEmployees(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	employees, err := h.projectService.ListEmployees(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTOs(employees))
}

// AssignEmployee assigns an employee to a project with a role
func (h *ProjectHandler) AssignEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AssignEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	assigned, err := h.projectService.AssignEmployee(c.Request.Context(), id, req.EmployeeID, req.Role.String())
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if !assigned {
		apierrors.OperationFailed(c, "Failed to assign employee to project")
		return
	}

	c.JSON(http.StatusOK, dto.AssignmentResultDTO{Success: true})
}

// UnassignEmployee removes an employee from a project
func (h *ProjectHandler) UnassignEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UnassignEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	removed, err := h.projectService.RemoveEmployee(c.Request.Context(), id, req.EmployeeID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	if !removed {
		apierrors.OperationFailed(c, "Failed to remove employee from project")
		return
	}

	c.JSON(http.StatusOK, dto.AssignmentResultDTO{Success: true})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, "Employee not found")
	case errors.Is(err, services.ErrInvalidDepartment),
		errors.Is(err, services.ErrInvalidEmployee),
		errors.Is(err, services.ErrNegativeAmount):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectCreationFailed):
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to create project")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "Internal server error")
	}
}
