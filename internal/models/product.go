package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalog.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:255;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock      int             `gorm:"not null;default:0"`
	CategoryID *uint           `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category    *Category    `gorm:"foreignKey:CategoryID"`
	ProductTags []ProductTag `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TagList returns the tags reachable through the loaded ProductTags.
// Associations pointing at a tag that no longer exists are skipped.
func (p Product) TagList() []Tag {
	tags := make([]Tag, 0, len(p.ProductTags))
	for _, pt := range p.ProductTags {
		if pt.Tag != nil {
			tags = append(tags, *pt.Tag)
		}
	}
	return tags
}
