package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
)

// ErrDuplicateEmail is returned when the unique email index rejects a write.
var ErrDuplicateEmail = errors.New("employee repository: email already in use")

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(database.OrderByID("employees")).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint64) (*models.Employee, error) {
	var employee models.Employee
	return notFound(&employee, r.db.WithContext(ctx).Preload("Department").First(&employee, id).Error)
}

func (r *GormEmployeeRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *GormEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return translateEmployeeWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(employee).Error)
}

func (r *GormEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return translateEmployeeWrite(r.db.WithContext(ctx).Omit(clause.Associations).Save(employee).Error)
}

func translateEmployeeWrite(err error) error {
	if err != nil && isDuplicateKey(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
	}
	return err
}

func (r *GormEmployeeRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeProject{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *GormEmployeeRepository) EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEmployeeRepository) ListByDepartment(ctx context.Context, departmentID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(database.InDepartment(departmentID), database.OrderByID("employees")).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormEmployeeRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(database.AssignedToProject(projectID), database.OrderByID("employees")).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}
