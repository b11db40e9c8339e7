package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wearhaus/wearhaus-backend/api/middleware"
	"github.com/wearhaus/wearhaus-backend/api/responses"
	"github.com/wearhaus/wearhaus-backend/api/validators"
	"github.com/wearhaus/wearhaus-backend/internal/catalog"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// CatalogController serves the public storefront browsing surface.
type CatalogController struct {
	svc  catalog.Service
	logg *logger.Logger
}

// CatalogControllerParams bundles the dependencies for NewCatalogController.
type CatalogControllerParams struct {
	Service catalog.Service
	Logger  *logger.Logger
}

func NewCatalogController(params CatalogControllerParams) *CatalogController {
	return &CatalogController{svc: params.Service, logg: params.Logger}
}

// staffRequest reports whether the caller is authenticated staff; staff see
// drafts and archived listings.
func staffRequest(r *http.Request) bool {
	claims, ok := middleware.ClaimsFrom(r.Context())
	return ok && claims.IsStaff
}

// ListCategories handles GET /categories.
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.svc.ListCategories(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, categories)
}

// ListByCategory handles GET /categories/{slug}/products.
func (c *CatalogController) ListByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	products, err := c.svc.ListByCategory(r.Context(), slug, staffRequest(r))
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, products)
}

// ListNew handles GET /products/new.
func (c *CatalogController) ListNew(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.ListNew(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, products)
}

// ListOnSale handles GET /products/sale.
func (c *CatalogController) ListOnSale(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.ListOnSale(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, products)
}

// Search handles GET /products/search?q=.
func (c *CatalogController) Search(w http.ResponseWriter, r *http.Request) {
	query := validators.QueryString(r, "q")

	products, err := c.svc.Search(r.Context(), query)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, products)
}

// Suggestions handles GET /products/suggestions?q=.
func (c *CatalogController) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := validators.QueryString(r, "q")

	suggestions, err := c.svc.SearchSuggestions(r.Context(), query)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, suggestions)
}

// GetProduct handles GET /products/{slug}.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := c.svc.GetProduct(r.Context(), slug, staffRequest(r))
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, product)
}
