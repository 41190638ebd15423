package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/workforce-api/internal/constants"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
)

var (
	// ErrInsertProject is returned when the first phase of CreateWithCode fails.
	ErrInsertProject = errors.New("project repository: insert project failed")
	// ErrGenerateCode is returned when the code generator fails. It is never retried.
	ErrGenerateCode = errors.New("project repository: generate code failed")
	// ErrCodeTooLong is returned when the composed code does not fit the code column.
	ErrCodeTooLong = errors.New("project repository: generated code too long")
	// ErrUpdateProjectCode is returned when the second phase of CreateWithCode fails.
	ErrUpdateProjectCode = errors.New("project repository: update project code failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db       *gorm.DB
	strategy *database.ExecutionStrategy
}

// NewProjectRepository creates a ProjectRepository whose multi-step writes run
// under strategy.
func NewProjectRepository(db *gorm.DB, strategy *database.ExecutionStrategy) ProjectRepository {
	return &GormProjectRepository{db: db, strategy: strategy}
}

func (r *GormProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(database.OrderByID("projects")).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	return notFound(&project, r.db.WithContext(ctx).Preload("Department").First(&project, id).Error)
}

func (r *GormProjectRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateWithCode runs the two-phase create: the row is inserted with an empty
// code to obtain its id, then updated to <generated><id>. Both phases share one
// transaction, so a failure in either leaves no row behind. When the
// transaction fails for a transient reason the strategy starts over with a
// fresh insert and a fresh generator call.
func (r *GormProjectRepository) CreateWithCode(ctx context.Context, project *models.Project, generate CodeGenerator) error {
	return r.strategy.Execute(ctx, r.db, func(tx *gorm.DB) error {
		project.ID = 0
		project.Code = ""
		project.CreatedAt = time.Time{}
		project.UpdatedAt = time.Time{}

		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrInsertProject, err)
		}

		random, err := generate(ctx)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrGenerateCode, err))
		}

		code := fmt.Sprintf("%s%d", random, project.ID)
		if len(code) > constants.MaxProjectCodeLength {
			return backoff.Permanent(fmt.Errorf("%w: %d characters", ErrCodeTooLong, len(code)))
		}

		now := time.Now()
		err = tx.Model(project).Updates(map[string]interface{}{
			"code":       code,
			"updated_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUpdateProjectCode, err)
		}

		project.Code = code
		project.UpdatedAt = now
		return nil
	})
}

func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.EmployeeProject{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *GormProjectRepository) ListByEmployee(ctx context.Context, employeeID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(database.AssignedEmployee(employeeID), database.OrderByID("projects")).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Assign is a single insert-if-absent against the (employee_id, project_id)
// primary key, so two concurrent calls for the same pair cannot both succeed.
func (r *GormProjectRepository) Assign(ctx context.Context, employeeID, projectID uint64, role string) (bool, error) {
	assignment := models.EmployeeProject{
		EmployeeID: employeeID,
		ProjectID:  projectID,
		Role:       role,
		AssignedAt: time.Now(),
	}

	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "project_id"}},
			DoNothing: true,
		}).
		Create(&assignment)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return false, nil
		}
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormProjectRepository) Unassign(ctx context.Context, employeeID, projectID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("employee_id = ? AND project_id = ?", employeeID, projectID).
		Delete(&models.EmployeeProject{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
