package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
)

// Concurrent assigns of the same pair run on separate connections to a file
// database, so only the primary key can keep them apart.
func TestConcurrentAssignKeepsOneRow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "assign.db") + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.Employee{},
		&models.Project{},
		&models.EmployeeProject{},
	))

	ctx := context.Background()
	projects := NewProjectRepository(db, database.NewExecutionStrategy(config.RetryConfig{MaxAttempts: 3}, nil))

	department := &models.Department{Name: "Engineering", OfficeLocation: "Building A"}
	require.NoError(t, NewDepartmentRepository(db).Create(ctx, department))

	employee := &models.Employee{
		FirstName:    "Test",
		LastName:     "User",
		Email:        "dev@example.com",
		Salary:       decimal.NewFromInt(50000),
		DepartmentID: department.ID,
	}
	require.NoError(t, NewEmployeeRepository(db).Create(ctx, employee))

	project := &models.Project{Name: "Apollo", Budget: decimal.NewFromInt(1000), DepartmentID: department.ID}
	require.NoError(t, projects.CreateWithCode(ctx, project, fixedCode("ABC")))

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		assigns int
		errs    []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := projects.Assign(ctx, employee.ID, project.ID, "Lead")

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if ok {
				assigns++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, assigns)

	var count int64
	require.NoError(t, db.Model(&models.EmployeeProject{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
