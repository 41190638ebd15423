package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Budget       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"budget"`
	Code         string          `gorm:"type:varchar(50);not null;default:''" json:"code"`
	DepartmentID uint64          `gorm:"not null" json:"department_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Department  *Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assignments []EmployeeProject `gorm:"foreignKey:ProjectID" json:"-"`
}
