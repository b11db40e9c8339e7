package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wearhaus/wearhaus-backend/api/controllers"
	"github.com/wearhaus/wearhaus-backend/api/middleware"
	"github.com/wearhaus/wearhaus-backend/pkg/auth/session"
	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
	"github.com/wearhaus/wearhaus-backend/pkg/metrics"
)

// Params carries everything the router needs.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Sessions session.Checker

	Health        *controllers.HealthController
	Auth          *controllers.AuthController
	Account       *controllers.AccountController
	Catalog       *controllers.CatalogController
	Orders        *controllers.OrdersController
	AdminProducts *controllers.AdminProductsController
}

// New assembles the full HTTP surface.
func New(params Params) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(params.Logger))
	r.Use(middleware.RequestID(params.Logger))
	r.Use(middleware.Logging(params.Logger, params.Metrics))

	r.Get("/health/live", params.Health.Live)
	r.Get("/health/ready", params.Health.Ready)
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	requireAuth := middleware.Auth(params.Config.JWT, params.Sessions, params.Logger)
	optionalAuth := middleware.OptionalAuth(params.Config.JWT, params.Sessions, params.Logger)
	requireStaff := middleware.RequireStaff(params.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", params.Auth.Register)
			r.Post("/login", params.Auth.Login)
			r.With(requireAuth).Post("/logout", params.Auth.Logout)
		})

		// public storefront; staff tokens additionally expose drafts
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/categories", params.Catalog.ListCategories)
			r.Get("/categories/{slug}/products", params.Catalog.ListByCategory)
			r.Get("/products/new", params.Catalog.ListNew)
			r.Get("/products/sale", params.Catalog.ListOnSale)
			r.Get("/products/search", params.Catalog.Search)
			r.Get("/products/suggestions", params.Catalog.Suggestions)
			r.Get("/products/{slug}", params.Catalog.GetProduct)
		})

		// signed-in shoppers
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/account", params.Account.Show)
			r.Patch("/account", params.Account.UpdateField)

			r.Post("/orders", params.Orders.Create)
			r.Get("/orders", params.Orders.List)
			r.Get("/orders/{orderID}", params.Orders.Get)
			r.Post("/orders/{orderID}/items/{itemID}/return", params.Orders.RequestReturn)
			r.Post("/orders/{orderID}/items/{itemID}/exchange", params.Orders.RequestExchange)
		})

		// staff management surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, requireStaff)
			r.Post("/products", params.AdminProducts.Create)
			r.Post("/products/bulk", params.AdminProducts.BulkCreate)
			r.Post("/products/status", params.AdminProducts.SetStatus)
			r.Patch("/orders/{orderID}/status", params.Orders.UpdateStatus)
		})
	})

	return r
}
