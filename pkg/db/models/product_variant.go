package models

import (
	"github.com/google/uuid"

	"github.com/wearhaus/wearhaus-backend/pkg/enums"
)

// ProductVariant is one size option of a product with its own stock count.
// (product_id, size) is unique at the storage layer.
type ProductVariant struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_variants_product_id_size_key"`
	Size      enums.Size `gorm:"column:size;not null;uniqueIndex:product_variants_product_id_size_key"`
	Stock     int        `gorm:"column:stock;not null;default:0"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
