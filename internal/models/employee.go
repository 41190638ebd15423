package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	FirstName    string          `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string          `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Salary       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"salary"`
	DepartmentID uint64          `gorm:"not null" json:"department_id"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relations
	Department  *Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assignments []EmployeeProject `gorm:"foreignKey:EmployeeID" json:"-"`
}

// FullName joins first and last name the way listings display them.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
