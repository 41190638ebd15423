package models

import "time"

type Department struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	OfficeLocation string    `gorm:"type:varchar(200);not null" json:"office_location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Employees []Employee `gorm:"foreignKey:DepartmentID;constraint:OnDelete:NO ACTION" json:"employees,omitempty"`
	Projects  []Project  `gorm:"foreignKey:DepartmentID;constraint:OnDelete:NO ACTION" json:"projects,omitempty"`
}
