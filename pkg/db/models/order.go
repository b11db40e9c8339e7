package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wearhaus/wearhaus-backend/pkg/enums"
)

// Order belongs to one user and owns its items. The total is never persisted;
// it is always recomputed from the items so edits cannot leave a stale value.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Comment   string            `gorm:"column:comment;not null;default:''"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`

	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TotalPrice sums the item totals. Requires Items to be loaded.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].TotalPrice())
	}
	return total
}
