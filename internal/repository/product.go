package repository

import (
	"context"
	"fmt"

	"catalog/backend/internal/models"
	"catalog/backend/internal/tagsync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductChanges carries the product columns a caller wants to overwrite.
// Nil fields are left as they are. ClearCategory detaches the product from
// its category and takes precedence over CategoryID.
type ProductChanges struct {
	Name          *string
	Price         *decimal.Decimal
	Stock         *int
	CategoryID    *uint
	ClearCategory bool
}

func (c ProductChanges) columns() map[string]any {
	cols := make(map[string]any)
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Price != nil {
		cols["price"] = *c.Price
	}
	if c.Stock != nil {
		cols["stock"] = *c.Stock
	}
	switch {
	case c.ClearCategory:
		cols["category_id"] = nil
	case c.CategoryID != nil:
		cols["category_id"] = *c.CategoryID
	}
	return cols
}

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetWithRelations(ctx context.Context, id uint) (models.Product, error)
	Create(ctx context.Context, product *models.Product, tagIDs []uint) ([]models.ProductTag, error)
	Update(ctx context.Context, id uint, changes ProductChanges, tagIDs *[]uint) (tagsync.Plan, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type productRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewProductRepository(db *gorm.DB, logger *logrus.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: logger,
	}
}

func withProductRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("ProductTags.Tag")
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := withProductRelations(r.db.WithContext(ctx)).Order("id").Find(&products).Error; err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *productRepository) GetWithRelations(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	if err := withProductRelations(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return models.Product{}, notFoundOr(err, "get product", id)
	}
	return product, nil
}

// Create inserts product and one association per tag ID in a single
// transaction. The created associations are returned.
func (r *productRepository) Create(ctx context.Context, product *models.Product, tagIDs []uint) ([]models.ProductTag, error) {
	var created []models.ProductTag

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		if len(tagIDs) == 0 {
			return nil
		}

		created = make([]models.ProductTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			created = append(created, models.ProductTag{ProductID: product.ID, TagID: tagID})
		}
		if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
			return fmt.Errorf("create product tags: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	r.log.Infof("Product created with ID %d and %d tags", product.ID, len(created))
	return created, nil
}

// Update applies changes to the product and, when tagIDs is non-nil,
// reconciles its tag associations against *tagIDs. A nil tagIDs leaves the
// associations untouched; an empty slice removes them all. Both steps share
// one transaction.
func (r *productRepository) Update(ctx context.Context, id uint, changes ProductChanges, tagIDs *[]uint) (tagsync.Plan, error) {
	var plan tagsync.Plan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, id).Error; err != nil {
			return notFoundOr(err, "find product", id)
		}

		if cols := changes.columns(); len(cols) > 0 {
			if err := tx.Model(&product).Updates(cols).Error; err != nil {
				return fmt.Errorf("update product %d: %w", id, err)
			}
		}

		if tagIDs == nil {
			return nil
		}

		var current []models.ProductTag
		if err := tx.Where("product_id = ?", id).Order("id").Find(&current).Error; err != nil {
			return fmt.Errorf("load product tags for %d: %w", id, err)
		}

		plan = tagsync.Reconcile(id, current, *tagIDs)

		if len(plan.Remove) > 0 {
			if err := tx.Delete(&models.ProductTag{}, plan.Remove).Error; err != nil {
				return fmt.Errorf("remove product tags for %d: %w", id, err)
			}
		}
		if len(plan.Add) > 0 {
			if err := tx.Omit(clause.Associations).Create(&plan.Add).Error; err != nil {
				return fmt.Errorf("add product tags for %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Warnf("Failed to update product %d: %v", id, err)
		return tagsync.Plan{}, err
	}

	r.log.Infof("Product %d updated (tags added: %d, removed: %d)", id, len(plan.Add), len(plan.Remove))
	return plan, nil
}

// Delete removes the product and its tag associations. It returns the number
// of product rows deleted, which is zero when the product does not exist.
func (r *productRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return fmt.Errorf("delete product tags for %d: %w", id, err)
		}

		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete product %d: %w", id, result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		r.log.Errorf("Failed to delete product %d: %v", id, err)
		return 0, err
	}

	if deleted == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
	} else {
		r.log.Infof("Product %d deleted", id)
	}
	return deleted, nil
}
