package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem references a product variant and freezes the price the shopper
// saw at order time. (order_id, variant_id) is unique: re-adding a variant
// merges quantities instead of inserting a second row. The referenced variant
// is protected from deletion while items point at it.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:order_items_order_id_variant_id_key"`
	VariantID     uuid.UUID       `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:order_items_order_id_variant_id_key"`
	Quantity      int             `gorm:"column:quantity;not null;default:1"`
	PriceSnapshot decimal.Decimal `gorm:"column:price_snapshot;type:numeric(8,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`

	ReturnRequested     bool       `gorm:"column:return_requested;not null;default:false"`
	ReturnReason        string     `gorm:"column:return_reason;not null;default:''"`
	ReturnRequestedAt   *time.Time `gorm:"column:return_requested_at"`
	ExchangeRequested   bool       `gorm:"column:exchange_requested;not null;default:false"`
	ExchangeRequestedAt *time.Time `gorm:"column:exchange_requested_at"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}

// TotalPrice is quantity times the frozen snapshot price.
func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.PriceSnapshot.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
