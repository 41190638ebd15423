package models

import "time"

// EmployeeProject is the assignment of one employee to one project. The
// composite primary key allows at most one row per pair.
type EmployeeProject struct {
	EmployeeID uint64    `gorm:"primarykey;autoIncrement:false" json:"employee_id"`
	ProjectID  uint64    `gorm:"primarykey;autoIncrement:false" json:"project_id"`
	Role       string    `gorm:"type:varchar(100);not null" json:"role"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`

	// Relations
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
