package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workforce-api/internal/middleware"
)

// Handlers groups every handler the router serves
type Handlers struct {
	Health      *HealthHandler
	Departments *DepartmentHandler
	Employees   *EmployeeHandler
	Projects    *ProjectHandler
}

// RegisterRoutes mounts the API on r
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		departments := api.Group("/departments")
		{
			departments.GET("", h.Departments.ListDepartments)
			departments.POST("", h.Departments.CreateDepartment)

			byID := departments.Group("/:id", middleware.RequireID())
			byID.GET("", h.Departments.GetDepartment)
			byID.PUT("", h.Departments.UpdateDepartment)
			byID.DELETE("", h.Departments.DeleteDepartment)
			byID.GET("/total-budget", h.Departments.GetTotalBudget)
			byID.GET("/employees", h.Departments.ListEmployees)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", h.Employees.ListEmployees)
			employees.POST("", h.Employees.CreateEmployee)

			byID := employees.Group("/:id", middleware.RequireID())
			byID.GET("", h.Employees.GetEmployee)
			byID.PUT("", h.Employees.UpdateEmployee)
			byID.DELETE("", h.Employees.DeleteEmployee)
			byID.GET("/projects", h.Employees.ListProjects)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Projects.ListProjects)
			projects.POST("", h.Projects.CreateProject)

			byID := projects.Group("/:id", middleware.RequireID())
			byID.GET("", h.Projects.GetProject)
			byID.PUT("", h.Projects.UpdateProject)
			byID.DELETE("", h.Projects.DeleteProject)
			byID.GET("/employees", h.Projects.ListEmployees)
			byID.POST("/assign", h.Projects.AssignEmployee)
			byID.POST("/unassign", h.Projects.UnassignEmployee)
		}
	}
}
