package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/naol728/rms/internal/app"
	"github.com/naol728/rms/internal/app/handlers"
	"github.com/naol728/rms/internal/auth/authmiddleware"
	"github.com/naol728/rms/internal/config"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/lib/imagestore"
	"github.com/naol728/rms/internal/lib/logger"
	"github.com/naol728/rms/internal/lib/logger/handlers/urllog"
	"github.com/naol728/rms/internal/service"
	"github.com/naol728/rms/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	userRepo := storage.NewUserRepository(application.DB)
	menuRepo := storage.NewMenuRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	tableRepo := storage.NewTableRepository(application.DB)
	invRepo := storage.NewInventoryRepository(application.DB)

	images, err := imagestore.New(cfg.Storage.Bucket, cfg.Storage.Region)
	if err != nil {
		log.Error("failed to initialize image store", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize image store"))
	}

	authService := service.NewAuthService(application.Logger, userRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	menuService := service.NewMenuService(application.Logger, menuRepo, images)
	cartService := service.NewCartService(application.Logger, cartRepo, menuRepo)
	checkoutService := service.NewCheckoutService(application.Logger, application.DB, cartRepo, orderRepo, tableRepo)
	orderService := service.NewOrderService(application.Logger, orderRepo)
	tableService := service.NewTableService(application.Logger, tableRepo)
	invService := service.NewInventoryService(application.Logger, invRepo)
	staffService := service.NewStaffService(application.Logger, userRepo)
	dashboardService := service.NewDashboardService(application.Logger, orderRepo, userRepo, invRepo, tableRepo)

	// Prime the menu snapshot. A failed load falls back to the built-in
	// catalog and is surfaced as a warning on /api/menu.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	menuService.Load(loadCtx)
	loadCancel()

	router.Post("/api/auth/login", handlers.LoginHandler(application.Logger, authService))
	router.Post("/api/auth/register", handlers.RegisterHandler(application.Logger, authService))
	router.Get("/api/menu", handlers.MenuHandler(application.Logger, menuService))
	router.Get("/api/categories", handlers.CategoriesHandler(application.Logger, menuService))

	router.Group(func(r chi.Router) {
		r.Use(authmiddleware.New())

		r.Get("/api/cart", handlers.GetCartHandler(application.Logger, cartService))
		r.Post("/api/cart", handlers.AddToCartHandler(application.Logger, cartService))
		r.Put("/api/cart/{id}", handlers.UpdateCartLineHandler(application.Logger, cartService))
		r.Delete("/api/cart/{id}", handlers.RemoveCartLineHandler(application.Logger, cartService))
		r.Delete("/api/cart", handlers.ClearCartHandler(application.Logger, cartService))

		r.Post("/api/orders", handlers.CheckoutHandler(application.Logger, checkoutService))
		r.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
		r.Get("/api/orders/my", handlers.MyOrdersHandler(application.Logger, orderService))
		r.Get("/api/orders/statuses", handlers.OrderStatusesHandler(orderService))
		r.Get("/api/orders/{id}/items", handlers.OrderLinesHandler(application.Logger, orderService))
		r.Patch("/api/orders/{id}/status", handlers.UpdateOrderStatusHandler(application.Logger, orderService))

		r.Get("/api/tables", handlers.TablesHandler(application.Logger, tableService))
		r.Patch("/api/tables/{id}/availability", handlers.SetTableAvailabilityHandler(application.Logger, tableService))

		r.Group(func(admin chi.Router) {
			admin.Use(authmiddleware.RequireRole(models.RoleAdmin))

			admin.Post("/api/menu", handlers.CreateMenuItemHandler(application.Logger, menuService))
			admin.Post("/api/menu/reload", handlers.ReloadMenuHandler(application.Logger, menuService))
			admin.Put("/api/menu/{id}", handlers.UpdateMenuItemHandler(application.Logger, menuService))
			admin.Delete("/api/menu/{id}", handlers.DeleteMenuItemHandler(application.Logger, menuService))
			admin.Patch("/api/menu/{id}/availability", handlers.ToggleAvailabilityHandler(application.Logger, menuService))
			admin.Post("/api/menu/{id}/image", handlers.UploadMenuImageHandler(application.Logger, menuService))

			admin.Get("/api/inventory", handlers.ListInventoryHandler(application.Logger, invService))
			admin.Post("/api/inventory", handlers.CreateInventoryItemHandler(application.Logger, invService))
			admin.Put("/api/inventory/{id}", handlers.UpdateInventoryItemHandler(application.Logger, invService))
			admin.Delete("/api/inventory/{id}", handlers.DeleteInventoryItemHandler(application.Logger, invService))

			admin.Get("/api/staff", handlers.ListStaffHandler(application.Logger, staffService))
			admin.Post("/api/staff", handlers.AddStaffHandler(application.Logger, staffService))
			admin.Put("/api/staff/{id}", handlers.UpdateStaffHandler(application.Logger, staffService))
			admin.Delete("/api/staff/{id}", handlers.RemoveStaffHandler(application.Logger, staffService))

			admin.Get("/api/dashboard/stats", handlers.DashboardHandler(application.Logger, dashboardService))
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
