package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/spti-payroll/attendance-backend-go/internal/pkg/database"
)

type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to the database named by TEST_DATABASE_URL.
func NewTestDatabase() (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes all data between test cases.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"users",
		"daily_summaries",
		"attendance_logs",
		"employees",
		"shifts",
		"work_settings",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
