// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"conciergerie-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database. The pool is capped at one
// connection so every test sees the same database and transactions run one at a time.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", FirstName: "Test", LastName: "User", Role: models.RoleCustomer}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProperty(t testing.TB, db *gorm.DB, slug string) *models.Property {
	t.Helper()
	p := &models.Property{
		Slug:          slug,
		Title:         slug,
		Type:          models.PropertyRiad,
		PricePerNight: 350,
		Guests:        4,
		Bedrooms:      2,
		Bathrooms:     1,
		City:          "Marrakech",
		Country:       "Maroc",
		IsActive:      true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}
