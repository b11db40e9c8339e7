package controllers

import (
	"net/http"

	"github.com/wearhaus/wearhaus-backend/api/middleware"
	"github.com/wearhaus/wearhaus-backend/api/responses"
	"github.com/wearhaus/wearhaus-backend/api/validators"
	"github.com/wearhaus/wearhaus-backend/internal/orders"
	pkgauth "github.com/wearhaus/wearhaus-backend/pkg/auth"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// OrdersController serves the order workflow for shoppers and staff.
type OrdersController struct {
	svc  orders.Service
	logg *logger.Logger
}

// OrdersControllerParams bundles the dependencies for NewOrdersController.
type OrdersControllerParams struct {
	Service orders.Service
	Logger  *logger.Logger
}

func NewOrdersController(params OrdersControllerParams) *OrdersController {
	return &OrdersController{svc: params.Service, logg: params.Logger}
}

func (c *OrdersController) claims(w http.ResponseWriter, r *http.Request) (*pkgauth.AccessTokenClaims, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		responses.WriteError(r.Context(), w, c.logg,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return nil, false
	}
	return claims, true
}

// Create handles POST /orders.
func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := c.claims(w, r)
	if !ok {
		return
	}

	var dto orders.CreateOrderDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	order, err := c.svc.CreateOrder(r.Context(), claims.UserID, dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, order)
}

// List handles GET /orders: the caller's own orders.
func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := c.claims(w, r)
	if !ok {
		return
	}

	orderList, err := c.svc.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, orderList)
}

// Get handles GET /orders/{orderID}.
func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := c.claims(w, r)
	if !ok {
		return
	}
	orderID, err := validators.UUIDParam(r, "orderID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	order, err := c.svc.GetOrder(r.Context(), claims.UserID, claims.IsStaff, orderID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}

// RequestReturn handles POST /orders/{orderID}/items/{itemID}/return.
func (c *OrdersController) RequestReturn(w http.ResponseWriter, r *http.Request) {
	claims, ok := c.claims(w, r)
	if !ok {
		return
	}
	orderID, err := validators.UUIDParam(r, "orderID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	itemID, err := validators.UUIDParam(r, "itemID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var dto orders.ReturnRequestDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	order, err := c.svc.RequestReturn(r.Context(), claims.UserID, orderID, itemID, dto.Reason)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}

// RequestExchange handles POST /orders/{orderID}/items/{itemID}/exchange.
func (c *OrdersController) RequestExchange(w http.ResponseWriter, r *http.Request) {
	claims, ok := c.claims(w, r)
	if !ok {
		return
	}
	orderID, err := validators.UUIDParam(r, "orderID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	itemID, err := validators.UUIDParam(r, "itemID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	order, err := c.svc.RequestExchange(r.Context(), claims.UserID, orderID, itemID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /admin/orders/{orderID}/status (staff only).
func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := validators.UUIDParam(r, "orderID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var dto orders.UpdateStatusDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	order, err := c.svc.UpdateStatus(r.Context(), orderID, dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}
