package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workforce-api/internal/models"
)

// Seed inserts a starter set of departments and employees. It does nothing
// when any department already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Department{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count departments: %w", err)
	}
	if count > 0 {
		zap.L().Debug("departments present, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		it := models.Department{Name: "Information Technology", OfficeLocation: "Building A, Floor 3"}
		hr := models.Department{Name: "Human Resources", OfficeLocation: "Building B, Floor 1"}
		finance := models.Department{Name: "Finance", OfficeLocation: "Building A, Floor 2"}

		departments := []*models.Department{&it, &hr, &finance}
		for _, d := range departments {
			if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
				return fmt.Errorf("failed to seed department %s: %w", d.Name, err)
			}
		}

		employees := []models.Employee{
			{FirstName: "John", LastName: "Doe", Email: "john.doe@gmail.com", Salary: decimal.NewFromInt(75000), DepartmentID: it.ID},
			{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@gmail.com", Salary: decimal.NewFromInt(65000), DepartmentID: hr.ID},
			{FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@gmail.com", Salary: decimal.NewFromInt(80000), DepartmentID: it.ID},
		}
		if err := tx.Omit(clause.Associations).Create(&employees).Error; err != nil {
			return fmt.Errorf("failed to seed employees: %w", err)
		}

		zap.L().Info("seeded database",
			zap.Int("departments", len(departments)),
			zap.Int("employees", len(employees)))
		return nil
	})
}
