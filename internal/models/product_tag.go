package models

// ProductTag is one edge of the Product <-> Tag many-to-many relationship.
// Rows are only written as a side effect of creating or updating a product.
type ProductTag struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;index"`
	TagID     uint `gorm:"not null;index"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Tag     *Tag     `gorm:"foreignKey:TagID"`
}
