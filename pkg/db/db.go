package db

import (
	"strings"

	"github.com/lonestarcare/carewatch/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database. An empty DSN falls back to a
// shared in-memory SQLite database for local development and tests.
func Open(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	dsn := strings.TrimSpace(cfg.DBDSN)
	if dsn == "" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormCfg)
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}
	return gorm.Open(sqlite.Open(dsn), gormCfg)
}
