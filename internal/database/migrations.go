package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the lookup indexes used by the relation queries. Existence
// is checked through the migrator so the same list works on every dialect.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Relation lookups
		{"employees", "idx_employees_department_id", "department_id"},
		{"projects", "idx_projects_department_id", "department_id"},
		// The primary key already covers employee_id as its leading column.
		{"employee_projects", "idx_employee_projects_project_id", "project_id"},

		{"projects", "idx_projects_code", "code"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			zap.L().Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns))
	}

	return nil
}
