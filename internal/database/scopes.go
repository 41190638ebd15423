package database

import (
	"gorm.io/gorm"
)

// InDepartment restricts a query on employees or projects to one department.
func InDepartment(departmentID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("department_id = ?", departmentID)
	}
}

// AssignedToProject restricts an employees query to those assigned to projectID.
func AssignedToProject(projectID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN employee_projects ON employee_projects.employee_id = employees.id").
			Where("employee_projects.project_id = ?", projectID)
	}
}

// AssignedEmployee restricts a projects query to those employeeID is assigned to.
func AssignedEmployee(employeeID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN employee_projects ON employee_projects.project_id = projects.id").
			Where("employee_projects.employee_id = ?", employeeID)
	}
}

// OrderByID gives listings a stable order.
func OrderByID(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC")
	}
}
