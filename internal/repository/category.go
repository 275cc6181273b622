package repository

import (
	"context"
	"fmt"

	"catalog/backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetWithRelations(ctx context.Context, id uint) (models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCategoryRepository(db *gorm.DB, logger *logrus.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Preload("Products").Order("id").Find(&categories).Error; err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) GetWithRelations(ctx context.Context, id uint) (models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Preload("Products").First(&category, id).Error; err != nil {
		return models.Category{}, notFoundOr(err, "get category", id)
	}
	return category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit("Products").Create(category).Error; err != nil {
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return fmt.Errorf("create category: %w", err)
	}
	r.log.Infof("Category created with ID %d", category.ID)
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, id uint, name string) error {
	result := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		r.log.Errorf("Failed to update category %d: %v", id, result.Error)
		return fmt.Errorf("update category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update category %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the category. Its products are kept and lose their category.
func (r *categoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach products from category %d: %w", id, err)
		}

		result := tx.Delete(&models.Category{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete category %d: %w", id, result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		r.log.Errorf("Failed to delete category %d: %v", id, err)
		return 0, err
	}
	return deleted, nil
}
