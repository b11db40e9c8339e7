package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wearhaus/wearhaus-backend/pkg/enums"
)

// Product is the canonical catalog listing. SKU is assigned once from the
// row's own identifier and never rewritten afterwards.
type Product struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name            string              `gorm:"column:name;not null"`
	Slug            string              `gorm:"column:slug;not null;uniqueIndex"`
	SKU             string              `gorm:"column:sku;not null;uniqueIndex"`
	Price           decimal.Decimal     `gorm:"column:price;type:numeric(8,2);not null"`
	DiscountPercent int                 `gorm:"column:discount_percent;not null;default:0"`
	Status          enums.ProductStatus `gorm:"column:status;not null;default:'draft'"`
	PublishedAt     *time.Time          `gorm:"column:published_at"`
	CategoryID      *uuid.UUID          `gorm:"column:category_id;type:uuid"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`

	Category *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags     []Tag            `gorm:"many2many:product_tags"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

var oneHundred = decimal.NewFromInt(100)

// FinalPrice applies the discount percentage to the list price.
func (p *Product) FinalPrice() decimal.Decimal {
	discount := decimal.NewFromInt(int64(100 - p.DiscountPercent))
	return p.Price.Mul(discount).Div(oneHundred)
}

// IsSoldOut reports whether no variant has stock. Requires Variants to be
// loaded.
func (p *Product) IsSoldOut() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// FirstImageKey returns the file key of the lowest-positioned image, or empty.
// Requires Images to be loaded in position order.
func (p *Product) FirstImageKey() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].FileKey
}
