package repository

import (
	"context"
	"fmt"

	"catalog/backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetWithRelations(ctx context.Context, id uint) (models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type tagRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewTagRepository(db *gorm.DB, logger *logrus.Logger) TagRepository {
	return &tagRepository{
		db:  db,
		log: logger,
	}
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Preload("ProductTags.Product").Order("id").Find(&tags).Error; err != nil {
		r.log.Errorf("Failed to list tags: %v", err)
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) GetWithRelations(ctx context.Context, id uint) (models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Preload("ProductTags.Product").First(&tag, id).Error; err != nil {
		return models.Tag{}, notFoundOr(err, "get tag", id)
	}
	return tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Omit("ProductTags").Create(tag).Error; err != nil {
		r.log.Errorf("Failed to create tag '%s': %v", tag.Name, err)
		return fmt.Errorf("create tag: %w", err)
	}
	r.log.Infof("Tag created with ID %d", tag.ID)
	return nil
}

func (r *tagRepository) Update(ctx context.Context, id uint, name string) error {
	result := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		r.log.Errorf("Failed to update tag %d: %v", id, result.Error)
		return fmt.Errorf("update tag %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update tag %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the tag together with every association that points at it.
func (r *tagRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return fmt.Errorf("delete product tags for tag %d: %w", id, err)
		}

		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete tag %d: %w", id, result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		r.log.Errorf("Failed to delete tag %d: %v", id, err)
		return 0, err
	}
	return deleted, nil
}
