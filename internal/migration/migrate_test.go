package migration

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestRunMigrationsCreatesSchema(t *testing.T) {
	db := openTestDB(t)
	if err := RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for _, table := range []string{
		"facilities",
		"facility_violations",
		"facility_inspections",
		"subscribers",
		"alert_subscriptions",
		"notifications",
		"alert_events",
	} {
		var count int64
		err := db.Raw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table,
		).Scan(&count).Error
		if err != nil {
			t.Fatalf("inspect schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := RunMigrations(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second run must be a no-op: %v", err)
	}

	var versions int64
	if err := db.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions).Error; err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if versions == 0 {
		t.Fatal("expected recorded migration versions")
	}
}

func TestRunMigrationsRequiresDB(t *testing.T) {
	if err := RunMigrations(nil); err == nil {
		t.Fatal("nil handle must be rejected")
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (x INT);\n\nCREATE TABLE b (y INT);\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if stmts[0] != "CREATE TABLE a (x INT)" {
		t.Fatalf("unexpected first statement %q", stmts[0])
	}
}
