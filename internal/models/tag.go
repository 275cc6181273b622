package models

// Tag represents a product tag (e.g., "rock music", "pop culture").
type Tag struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:100;not null"`
	ProductTags []ProductTag `gorm:"foreignKey:TagID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ProductList returns the products reachable through the loaded ProductTags.
func (t Tag) ProductList() []Product {
	products := make([]Product, 0, len(t.ProductTags))
	for _, pt := range t.ProductTags {
		if pt.Product != nil {
			products = append(products, *pt.Product)
		}
	}
	return products
}
