package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/models"
)

type DatabaseTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (suite *DatabaseTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	SetDB(suite.db)
	suite.Require().NoError(Migrate())
}

func (suite *DatabaseTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DatabaseTestSuite) TestMigrateCreatesTablesAndIndexes() {
	m := suite.db.Migrator()
	suite.True(m.HasTable(&models.Department{}))
	suite.True(m.HasTable(&models.Employee{}))
	suite.True(m.HasTable(&models.Project{}))
	suite.True(m.HasTable(&models.EmployeeProject{}))

	suite.True(m.HasIndex("projects", "idx_projects_department_id"))
	suite.True(m.HasIndex("employee_projects", "idx_employee_projects_project_id"))
}

func (suite *DatabaseTestSuite) TestAddIndexesIsIdempotent() {
	suite.NoError(AddIndexes(suite.db))
	suite.NoError(AddIndexes(suite.db))
}

func (suite *DatabaseTestSuite) TestSeed() {
	suite.Require().NoError(Seed(suite.db))

	var departments []models.Department
	suite.Require().NoError(suite.db.Order("id").Find(&departments).Error)
	suite.Require().Len(departments, 3)
	suite.Equal("Information Technology", departments[0].Name)
	suite.Equal("Building B, Floor 1", departments[1].OfficeLocation)

	var employees []models.Employee
	suite.Require().NoError(suite.db.Order("id").Find(&employees).Error)
	suite.Require().Len(employees, 3)
	suite.Equal(departments[0].ID, employees[2].DepartmentID)
	suite.True(decimal.NewFromInt(80000).Equal(employees[2].Salary))

	// a second run leaves the data alone
	suite.Require().NoError(Seed(suite.db))
	var count int64
	suite.db.Model(&models.Employee{}).Count(&count)
	suite.Equal(int64(3), count)
}

func (suite *DatabaseTestSuite) TestScopes() {
	it := models.Department{Name: "IT", OfficeLocation: "A"}
	hr := models.Department{Name: "HR", OfficeLocation: "B"}
	suite.Require().NoError(suite.db.Create(&it).Error)
	suite.Require().NoError(suite.db.Create(&hr).Error)

	alice := models.Employee{FirstName: "Alice", LastName: "A", Email: "alice@example.com", DepartmentID: it.ID}
	bob := models.Employee{FirstName: "Bob", LastName: "B", Email: "bob@example.com", DepartmentID: hr.ID}
	suite.Require().NoError(suite.db.Create(&alice).Error)
	suite.Require().NoError(suite.db.Create(&bob).Error)

	project := models.Project{Name: "Apollo", DepartmentID: it.ID}
	suite.Require().NoError(suite.db.Create(&project).Error)
	suite.Require().NoError(suite.db.Create(&models.EmployeeProject{EmployeeID: bob.ID, ProjectID: project.ID, Role: "Dev"}).Error)

	var inIT []models.Employee
	suite.Require().NoError(suite.db.Scopes(InDepartment(it.ID)).Find(&inIT).Error)
	suite.Require().Len(inIT, 1)
	suite.Equal("Alice", inIT[0].FirstName)

	var onProject []models.Employee
	suite.Require().NoError(suite.db.Scopes(AssignedToProject(project.ID), OrderByID("employees")).Find(&onProject).Error)
	suite.Require().Len(onProject, 1)
	suite.Equal(bob.ID, onProject[0].ID)

	var bobsProjects []models.Project
	suite.Require().NoError(suite.db.Scopes(AssignedEmployee(bob.ID)).Find(&bobsProjects).Error)
	suite.Require().Len(bobsProjects, 1)
	suite.Equal("Apollo", bobsProjects[0].Name)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DBConfig{Driver: "oracle"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
