package models

// Category groups products. Deleting a category leaves its products in place
// with no category.
type Category struct {
	ID       uint      `gorm:"primaryKey"`
	Name     string    `gorm:"size:255;not null"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
