package controllers

import (
	"net/http"

	"github.com/wearhaus/wearhaus-backend/api/middleware"
	"github.com/wearhaus/wearhaus-backend/api/responses"
	"github.com/wearhaus/wearhaus-backend/api/validators"
	"github.com/wearhaus/wearhaus-backend/internal/orders"
	"github.com/wearhaus/wearhaus-backend/internal/users"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// UpdateProfileDTO names one editable profile field and its new value.
type UpdateProfileDTO struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type accountView struct {
	User   users.ProfileDTO  `json:"user"`
	Orders []orders.OrderDTO `json:"orders"`
}

// AccountController serves the signed-in user's dashboard.
type AccountController struct {
	users  users.Service
	orders orders.Service
	logg   *logger.Logger
}

// AccountControllerParams bundles the dependencies for NewAccountController.
type AccountControllerParams struct {
	Users  users.Service
	Orders orders.Service
	Logger *logger.Logger
}

func NewAccountController(params AccountControllerParams) *AccountController {
	return &AccountController{users: params.Users, orders: params.Orders, logg: params.Logger}
}

// Show handles GET /account: the profile plus the user's order history.
func (c *AccountController) Show(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		responses.WriteError(r.Context(), w, c.logg,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, err := c.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	orderList, err := c.orders.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, accountView{
		User:   users.ToProfileDTO(user),
		Orders: orderList,
	})
}

// UpdateField handles PATCH /account: one profile field per request.
func (c *AccountController) UpdateField(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		responses.WriteError(r.Context(), w, c.logg,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var dto UpdateProfileDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	user, updated, err := c.users.UpdateProfileField(r.Context(), claims.UserID, dto.Field, dto.Value)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	responses.WriteSuccess(w, http.StatusOK, map[string]any{
		"user":    users.ToProfileDTO(user),
		"updated": updated,
	})
}
