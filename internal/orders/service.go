package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	"github.com/wearhaus/wearhaus-backend/pkg/enums"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// Service implements the order workflow. Every operation takes the acting
// user explicitly; nothing is read from ambient state.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, dto CreateOrderDTO) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	GetOrder(ctx context.Context, userID uuid.UUID, isStaff bool, orderID uuid.UUID) (*OrderDTO, error)
	RequestReturn(ctx context.Context, userID, orderID, itemID uuid.UUID, reason string) (*OrderDTO, error)
	RequestExchange(ctx context.Context, userID, orderID, itemID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, dto UpdateStatusDTO) (*OrderDTO, error)
}

type service struct {
	db   *db.Client
	repo *Repository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	DB     *db.Client
	Repo   *Repository
	Logger *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{db: params.DB, repo: params.Repo, logg: params.Logger}
}

// CreateOrder stores a new pending order. Lines referencing the same variant
// are merged into one item, and each item freezes the discounted price the
// shopper saw. Stock is not decremented here; fulfilment adjusts it when the
// order is accepted.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, dto CreateOrderDTO) (*OrderDTO, error) {
	if len(dto.Items) == 0 {
		return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "items", Message: "at least one item is required"})
	}

	merged := make(map[uuid.UUID]int)
	var variantIDs []uuid.UUID
	for _, item := range dto.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "items", Message: "quantity must be positive"})
		}
		if _, seen := merged[item.VariantID]; !seen {
			variantIDs = append(variantIDs, item.VariantID)
		}
		merged[item.VariantID] += item.Quantity
	}

	variants, err := s.repo.FindVariants(ctx, variantIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading variants")
	}
	byID := make(map[uuid.UUID]*models.ProductVariant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	order := &models.Order{
		ID:      uuid.New(),
		UserID:  userID,
		Status:  enums.OrderStatusPending,
		Comment: dto.Comment,
	}
	for _, variantID := range variantIDs {
		variant, ok := byID[variantID]
		if !ok {
			return nil, pkgerrors.Validation(pkgerrors.FieldError{
				Field:   "items",
				Message: fmt.Sprintf("unknown variant %s", variantID),
			})
		}
		if variant.Product == nil || variant.Product.Status != enums.ProductStatusActive {
			return nil, pkgerrors.Validation(pkgerrors.FieldError{
				Field:   "items",
				Message: fmt.Sprintf("variant %s is not available", variantID),
			})
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			VariantID:     variantID,
			Quantity:      merged[variantID],
			PriceSnapshot: variant.Product.FinalPrice(),
		})
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String(), "items": len(order.Items)})
	s.logg.Info(ctx, "order created")

	return s.reload(ctx, order.ID)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// GetOrder loads one order. Non-staff callers only see their own orders; a
// foreign order reads as not found so ownership is not leaked.
func (s *service) GetOrder(ctx context.Context, userID uuid.UUID, isStaff bool, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOwned(ctx, userID, isStaff, orderID)
	if err != nil {
		return nil, err
	}
	dto := ToOrderDTO(order)
	return &dto, nil
}

// RequestReturn files a return for one item. Repeating the request overwrites
// the reason and timestamp instead of failing.
func (s *service) RequestReturn(ctx context.Context, userID, orderID, itemID uuid.UUID, reason string) (*OrderDTO, error) {
	if reason == "" {
		return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "reason", Message: "reason is required"})
	}

	order, item, err := s.loadReturnable(ctx, userID, orderID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkReturnRequested(ctx, item.ID, reason, time.Now()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking return")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "return requested")

	return s.reload(ctx, order.ID)
}

// RequestExchange files an exchange for one item, idempotently.
func (s *service) RequestExchange(ctx context.Context, userID, orderID, itemID uuid.UUID) (*OrderDTO, error) {
	order, item, err := s.loadReturnable(ctx, userID, orderID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkExchangeRequested(ctx, item.ID, time.Now()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking exchange")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "exchange requested")

	return s.reload(ctx, order.ID)
}

// UpdateStatus moves the order along its lifecycle. Backward moves and moves
// off a denied order are rejected as state conflicts.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, dto UpdateStatusDTO) (*OrderDTO, error) {
	next, err := enums.ParseOrderStatus(dto.Status)
	if err != nil {
		return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "status", Message: "unknown order status"})
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String(), "status": string(next)})
	s.logg.Info(ctx, "order status updated")

	return s.reload(ctx, order.ID)
}

func (s *service) loadOwned(ctx context.Context, userID uuid.UUID, isStaff bool, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if !isStaff && order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// loadReturnable checks ownership, the order state and item membership for
// return and exchange requests.
func (s *service) loadReturnable(ctx context.Context, userID, orderID, itemID uuid.UUID) (*models.Order, *models.OrderItem, error) {
	order, err := s.loadOwned(ctx, userID, false, orderID)
	if err != nil {
		return nil, nil, err
	}

	if !order.Status.AllowsReturns() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %s does not accept return requests", order.Status))
	}

	for i := range order.Items {
		if order.Items[i].ID == itemID {
			return order, &order.Items[i], nil
		}
	}
	return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
}

func (s *service) reload(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading order")
	}
	dto := ToOrderDTO(order)
	return &dto, nil
}
