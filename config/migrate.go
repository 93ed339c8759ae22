package config

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// RunMigrations applies the SQL migrations of driver that GORM's AutoMigrate
// cannot express, such as the booking overlap constraints.
func RunMigrations(db *sql.DB, driver string, log *zap.Logger) error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(zap.NewStdLog(log.Named("goose")))
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.Info("🔄 Applying database migrations...", zap.String("driver", driver))
	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("✅ Migrations applied successfully")
	return nil
}
