package controllers

import (
	"net/http"

	"github.com/wearhaus/wearhaus-backend/api/middleware"
	"github.com/wearhaus/wearhaus-backend/api/responses"
	"github.com/wearhaus/wearhaus-backend/api/validators"
	"github.com/wearhaus/wearhaus-backend/internal/auth"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// AuthController exposes register, login and logout.
type AuthController struct {
	svc  auth.Service
	logg *logger.Logger
}

// AuthControllerParams bundles the dependencies for NewAuthController.
type AuthControllerParams struct {
	Service auth.Service
	Logger  *logger.Logger
}

func NewAuthController(params AuthControllerParams) *AuthController {
	return &AuthController{svc: params.Service, logg: params.Logger}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var dto auth.RegisterDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	result, err := c.svc.Register(r.Context(), dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, result)
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var dto auth.LoginDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	result, err := c.svc.Login(r.Context(), dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

// Logout handles POST /auth/logout. It runs behind the auth middleware, so
// the claims carry the session to revoke.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		responses.WriteError(r.Context(), w, c.logg,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := c.svc.Logout(r.Context(), claims.ID); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "logged out"})
}
