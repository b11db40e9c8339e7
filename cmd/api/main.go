package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wearhaus/wearhaus-backend/api/controllers"
	"github.com/wearhaus/wearhaus-backend/api/routes"
	"github.com/wearhaus/wearhaus-backend/internal/auth"
	"github.com/wearhaus/wearhaus-backend/internal/catalog"
	"github.com/wearhaus/wearhaus-backend/internal/orders"
	"github.com/wearhaus/wearhaus-backend/internal/users"
	"github.com/wearhaus/wearhaus-backend/pkg/auth/session"
	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
	"github.com/wearhaus/wearhaus-backend/pkg/metrics"
	"github.com/wearhaus/wearhaus-backend/pkg/migrate"
	redisclient "github.com/wearhaus/wearhaus-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "wearhaus",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database bootstrap failed", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		logg.Error(ctx, "auto-migration failed", err)
		os.Exit(1)
	}

	redis, err := redisclient.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "redis bootstrap failed", err)
		os.Exit(1)
	}
	defer func() { _ = redis.Close() }()

	sessions, err := session.NewManager(redis, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "session manager bootstrap failed", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(client.DB())
	catalogRepo := catalog.NewRepository(client.DB())
	ordersRepo := orders.NewRepository(client.DB())

	usersSvc := users.NewService(users.ServiceParams{Repo: usersRepo, Logger: logg})
	authSvc := auth.NewService(auth.ServiceParams{
		DB:       client,
		Repo:     usersRepo,
		Sessions: sessions,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	catalogSvc := catalog.NewService(catalog.ServiceParams{
		DB:      client,
		Repo:    catalogRepo,
		Catalog: cfg.Catalog,
		Logger:  logg,
	})
	ordersSvc := orders.NewService(orders.ServiceParams{
		DB:     client,
		Repo:   ordersRepo,
		Logger: logg,
	})

	httpMetrics := metrics.NewHTTPMetrics()

	router := routes.New(routes.Params{
		Config:   cfg,
		Logger:   logg,
		Metrics:  httpMetrics,
		Sessions: sessions,
		Health: controllers.NewHealthController(controllers.HealthControllerParams{
			DB:     client,
			Redis:  redis,
			Logger: logg,
		}),
		Auth: controllers.NewAuthController(controllers.AuthControllerParams{
			Service: authSvc,
			Logger:  logg,
		}),
		Account: controllers.NewAccountController(controllers.AccountControllerParams{
			Users:  usersSvc,
			Orders: ordersSvc,
			Logger: logg,
		}),
		Catalog: controllers.NewCatalogController(controllers.CatalogControllerParams{
			Service: catalogSvc,
			Logger:  logg,
		}),
		Orders: controllers.NewOrdersController(controllers.OrdersControllerParams{
			Service: ordersSvc,
			Logger:  logg,
		}),
		AdminProducts: controllers.NewAdminProductsController(controllers.AdminProductsControllerParams{
			Service: catalogSvc,
			Logger:  logg,
		}),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "http server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
}
