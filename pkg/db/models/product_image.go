package models

import "github.com/google/uuid"

// ProductImage references a stored image file; Position ascending is the
// display order.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	FileKey   string    `gorm:"column:file_key;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
}
