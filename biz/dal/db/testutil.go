package db

import (
	"context"
	"testing"

	"catalogo/biz/dal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Config{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection.
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestProduct inserts a product row with the given fields.
func CreateTestProduct(t *testing.T, db *gorm.DB, name, description string, imagePath *string) *model.Product {
	t.Helper()
	dao := NewProductDAO()
	p := &model.Product{
		Name:        name,
		Description: description,
		ImagePath:   imagePath,
	}
	if err := dao.Create(context.Background(), db, p); err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return p
}

// SeedBucketURL inserts the bucket base URL config row used by most tests.
func SeedBucketURL(t *testing.T, db *gorm.DB, url string) {
	t.Helper()
	dao := NewConfigDAO()
	if err := dao.Set(context.Background(), db, "S3_BUCKET_URL", url); err != nil {
		t.Fatalf("Failed to seed bucket url: %v", err)
	}
}
