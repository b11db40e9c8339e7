package controllers

import (
	"net/http"

	"github.com/wearhaus/wearhaus-backend/api/responses"
	"github.com/wearhaus/wearhaus-backend/api/validators"
	"github.com/wearhaus/wearhaus-backend/internal/catalog"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// AdminProductsController exposes the staff-only catalog management surface.
type AdminProductsController struct {
	svc  catalog.Service
	logg *logger.Logger
}

// AdminProductsControllerParams bundles the dependencies for the constructor.
type AdminProductsControllerParams struct {
	Service catalog.Service
	Logger  *logger.Logger
}

func NewAdminProductsController(params AdminProductsControllerParams) *AdminProductsController {
	return &AdminProductsController{svc: params.Service, logg: params.Logger}
}

// Create handles POST /admin/products.
func (c *AdminProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto catalog.CreateProductDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	product, err := c.svc.CreateProduct(r.Context(), dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, product)
}

// BulkCreate handles POST /admin/products/bulk. The whole batch commits or
// nothing does.
func (c *AdminProductsController) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var dto catalog.BulkCreateDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	products, err := c.svc.BulkCreateProducts(r.Context(), dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, products)
}

// SetStatus handles POST /admin/products/status: bulk activate or archive.
func (c *AdminProductsController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var dto catalog.SetStatusDTO
	if err := validators.DecodeJSONBody(r, &dto); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	affected, err := c.svc.SetStatus(r.Context(), dto)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]int64{"affected": affected})
}
