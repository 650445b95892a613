package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/maastudio/storefront/internal/config"
	"github.com/maastudio/storefront/internal/events"
	"github.com/maastudio/storefront/internal/httpserver"
	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/middleware/csrf"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.OpenDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	notifier := &events.Notifier{Logger: logger}
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		notifier.Producer = producer
	} else {
		logger.Warn("kafka disabled, KAFKA_BROKERS not set")
	}

	r := &repo.GormRepo{DB: db}
	inventory := &service.InventoryService{Repo: r}
	cartSvc := &service.CartService{Repo: r, MaxPerProduct: cfg.MaxPerProduct}
	checkoutSvc := &service.CheckoutService{Repo: r, Inventory: inventory, Notifier: notifier, TaxRate: cfg.TaxRate}
	orderSvc := &service.OrderService{Repo: r, Inventory: inventory, Notifier: notifier}
	catalogSvc := &service.CatalogService{Repo: r}
	addressSvc := &service.AddressService{Repo: r}
	wishlistSvc := &service.WishlistService{Repo: r, Cart: cartSvc}
	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}
	userSvc := &service.UserService{Repo: r}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	csrfCfg := csrf.DefaultConfig()
	csrfCfg.SkipPaths = []string{
		"/health/live", "/health/ready",
		"/api/v1/auth/register", "/api/v1/auth/login", "/api/v1/auth/refresh",
	}
	e.Use(csrf.Middleware(csrfCfg))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			ctx := logging.IntoContext(c.Request().Context(), reqLogger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc},
		OrderHandler:    &httpserver.OrderHTTP{Checkout: checkoutSvc, Svc: orderSvc},
		AddressHandler:  &httpserver.AddressHTTP{Svc: addressSvc},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: wishlistSvc},
		UserHandler:     &httpserver.UserHTTP{Svc: userSvc},
		JWTSecret:       cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
