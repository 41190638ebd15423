package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
)

// ErrDepartmentInUse is returned when a delete is refused by a foreign key.
var ErrDepartmentInUse = errors.New("department repository: department is still referenced")

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Scopes(database.OrderByID("departments")).Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uint64) (*models.Department, error) {
	var department models.Department
	return notFound(&department, r.db.WithContext(ctx).First(&department, id).Error)
}

func (r *GormDepartmentRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *GormDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(department).Error
}

func (r *GormDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(department).Error
}

// Delete does not cascade. A department that employees or projects still
// point at is rejected with ErrDepartmentInUse where the database enforces
// the constraint.
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Department{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return false, ErrDepartmentInUse
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormDepartmentRepository) CountDependents(ctx context.Context, id uint64) (int64, error) {
	db := r.db.WithContext(ctx)

	var employees, projects int64
	if err := db.Model(&models.Employee{}).Scopes(database.InDepartment(id)).Count(&employees).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&models.Project{}).Scopes(database.InDepartment(id)).Count(&projects).Error; err != nil {
		return 0, err
	}
	return employees + projects, nil
}

func (r *GormDepartmentRepository) TotalProjectBudget(ctx context.Context, id uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Scopes(database.InDepartment(id)).
		Select("COALESCE(SUM(budget), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
