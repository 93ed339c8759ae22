// Package pgtest opens the PostgreSQL database named by TEST_DATABASE_URL for tests
// that need real row locks and the booking constraints. Tests skip when it is unset.
package pgtest

import (
	"os"
	"testing"

	"conciergerie-backend/config"
	"conciergerie-backend/models"
	"conciergerie-backend/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const envDSN = "TEST_DATABASE_URL"

// NewDB returns a migrated database with a real connection pool.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skipf("%s is not set", envDSN)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(16)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.RunMigrations(sqlDB, "postgres", zap.NewNop()); err != nil {
		t.Fatalf("goose: %v", err)
	}
	return db
}

// Seed creates a user and a property owned by the calling test. Both are removed,
// with their bookings, when the test ends.
func Seed(t testing.TB, db *gorm.DB) (*models.User, *models.Property) {
	t.Helper()
	suffix := uuid.NewString()
	user := testutil.SeedUser(t, db, "guest-"+suffix+"@example.com")
	property := testutil.SeedProperty(t, db, "riad-"+suffix)

	t.Cleanup(func() {
		db.Where("property_id = ?", property.ID).Delete(&models.Booking{})
		db.Delete(&models.Property{}, "id = ?", property.ID)
		db.Delete(&models.User{}, "id = ?", user.ID)
	})
	return user, property
}
