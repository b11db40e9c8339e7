package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderDTO carries a new order request.
type CreateOrderDTO struct {
	Items   []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Comment string           `json:"comment"`
}

// ReturnRequestDTO files a return for one order item.
type ReturnRequestDTO struct {
	Reason string `json:"reason" validate:"required"`
}

// UpdateStatusDTO is a staff transition of the order lifecycle.
type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemDTO is the public shape of one order line.
type OrderItemDTO struct {
	ID            uuid.UUID       `json:"id"`
	VariantID     uuid.UUID       `json:"variant_id"`
	ProductName   string          `json:"product_name"`
	ProductSlug   string          `json:"product_slug"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	TotalPrice    decimal.Decimal `json:"total_price"`

	ReturnRequested     bool       `json:"return_requested"`
	ReturnReason        string     `json:"return_reason,omitempty"`
	ReturnRequestedAt   *time.Time `json:"return_requested_at,omitempty"`
	ExchangeRequested   bool       `json:"exchange_requested"`
	ExchangeRequestedAt *time.Time `json:"exchange_requested_at,omitempty"`
}

// OrderDTO is the public shape of an order. The total is computed from the
// items on every read.
type OrderDTO struct {
	ID         uuid.UUID       `json:"id"`
	Status     string          `json:"status"`
	Comment    string          `json:"comment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItemDTO  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ToOrderDTO maps an order with items and their variants preloaded.
func ToOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:         order.ID,
		Status:     order.Status.String(),
		Comment:    order.Comment,
		CreatedAt:  order.CreatedAt,
		Items:      make([]OrderItemDTO, 0, len(order.Items)),
		TotalPrice: order.TotalPrice(),
	}
	for i := range order.Items {
		item := &order.Items[i]
		itemDTO := OrderItemDTO{
			ID:                  item.ID,
			VariantID:           item.VariantID,
			Quantity:            item.Quantity,
			PriceSnapshot:       item.PriceSnapshot,
			TotalPrice:          item.TotalPrice(),
			ReturnRequested:     item.ReturnRequested,
			ReturnReason:        item.ReturnReason,
			ReturnRequestedAt:   item.ReturnRequestedAt,
			ExchangeRequested:   item.ExchangeRequested,
			ExchangeRequestedAt: item.ExchangeRequestedAt,
		}
		if item.Variant != nil {
			itemDTO.Size = item.Variant.Size.String()
			if item.Variant.Product != nil {
				itemDTO.ProductName = item.Variant.Product.Name
				itemDTO.ProductSlug = item.Variant.Product.Slug
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}
