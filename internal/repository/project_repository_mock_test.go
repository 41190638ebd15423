package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
)

func newMockProjectRepository(t *testing.T) (ProjectRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)

	strategy := database.NewExecutionStrategy(config.RetryConfig{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	}, nil)
	return NewProjectRepository(db, strategy), mock
}

func newProject() *models.Project {
	return &models.Project{Name: "Apollo", Budget: decimal.NewFromInt(5000), DepartmentID: 1}
}

func TestCreateWithCodeInsertsThenUpdatesInOneTransaction(t *testing.T) {
	repo, mock := newMockProjectRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE `projects` SET").
		WithArgs("XYZ7", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	project := newProject()
	err := repo.CreateWithCode(context.Background(), project, fixedCode("XYZ"))

	require.NoError(t, err)
	assert.Equal(t, uint64(7), project.ID)
	assert.Equal(t, "XYZ7", project.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithCodeRollsBackWhenGeneratorFails(t *testing.T) {
	repo, mock := newMockProjectRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectRollback()

	calls := 0
	err := repo.CreateWithCode(context.Background(), newProject(), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("non-success status 503")
	})

	assert.ErrorIs(t, err, ErrGenerateCode)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithCodeRestartsWholeAttemptOnDeadlock(t *testing.T) {
	repo, mock := newMockProjectRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE `projects` SET").WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("UPDATE `projects` SET").
		WithArgs("XYZ8", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	calls := 0
	project := newProject()
	err := repo.CreateWithCode(context.Background(), project, func(ctx context.Context) (string, error) {
		calls++
		return "XYZ", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "XYZ8", project.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithCodeDoesNotRetryInsertFailures(t *testing.T) {
	repo, mock := newMockProjectRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key"})
	mock.ExpectRollback()

	err := repo.CreateWithCode(context.Background(), newProject(), fixedCode("XYZ"))

	assert.ErrorIs(t, err, ErrInsertProject)
	assert.NoError(t, mock.ExpectationsWereMet())
}
