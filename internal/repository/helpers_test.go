package repository

import (
	"context"
	"path/filepath"
	"testing"

	"catalog/backend/internal/database"
	"catalog/backend/internal/logging"
	"catalog/backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// createTestDB opens a migrated SQLite database in a temp dir.
func createTestDB(t *testing.T) (*gorm.DB, *logrus.Logger) {
	t.Helper()
	return openTestDB(t, "")
}

// createTestDBWithForeignKeys is createTestDB with foreign key enforcement
// switched on, which SQLite leaves off by default.
func createTestDBWithForeignKeys(t *testing.T) (*gorm.DB, *logrus.Logger) {
	t.Helper()
	return openTestDB(t, "?_foreign_keys=on")
}

func openTestDB(t *testing.T, params string) (*gorm.DB, *logrus.Logger) {
	t.Helper()
	log := logging.New("error", "text")
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")+params), log)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db, log
}

func createTestTags(t *testing.T, db *gorm.DB, names ...string) []models.Tag {
	t.Helper()
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		if err := db.Create(&tag).Error; err != nil {
			t.Fatalf("create tag %q: %v", name, err)
		}
		tags = append(tags, tag)
	}
	return tags
}

func newProduct(name string, price string, stock int) *models.Product {
	return &models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
}

func tagIDsOf(t *testing.T, db *gorm.DB, productID uint) []uint {
	t.Helper()
	var rows []models.ProductTag
	if err := db.WithContext(context.Background()).Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		t.Fatalf("load product tags: %v", err)
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TagID)
	}
	return ids
}

func ptr[T any](v T) *T { return &v }
