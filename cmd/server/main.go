package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/controller"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/db"
	"github.com/lacreme/bakery-backend/internal/middleware"
	"github.com/lacreme/bakery-backend/internal/router"
	"github.com/lacreme/bakery-backend/internal/scheduler"
	"github.com/lacreme/bakery-backend/internal/storage"
	ws "github.com/lacreme/bakery-backend/internal/websocket"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"github.com/lacreme/bakery-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting La Creme Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	database := db.GetDB()
	orderRepo := repository.NewOrderRepository(database)
	cartRepo := repository.NewCartRepository(database)
	productRepo := repository.NewProductRepository(database)
	couponRepo := repository.NewCouponRepository(database)
	addressRepo := repository.NewAddressRepository(database)
	bakeryRepo := repository.NewBakeryRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	userRepo := repository.NewUserRepository(database)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run(ctx)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, hub)
	orderOpts := []service.OrderOption{service.WithNotifier(notificationService)}

	// Redis는 선택 사항. 없으면 중복 결제 방지 락 없이 동작
	if cfg.Redis.Enabled() {
		rdb, err := redis.Init(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, checkout lock disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			orderOpts = append(orderOpts, service.WithCheckoutLocker(redis.NewCheckoutLock(rdb)))
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	orderService := service.NewOrderService(database, orderRepo, cartRepo, productRepo, couponRepo, addressRepo, bakeryRepo,
		cfg.Order, orderOpts...)
	cartService := service.NewCartService(cartRepo, productRepo)
	couponService := service.NewCouponService(couponRepo, bakeryRepo)
	reviewService := service.NewReviewService(database, reviewRepo, orderRepo, bakeryRepo)
	bakeryService := service.NewBakeryService(bakeryRepo, notificationService)
	productService := service.NewProductService(productRepo, bakeryRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, bakeryRepo)
	addressService := service.NewAddressService(addressRepo)
	userService := service.NewUserService(userRepo)

	// Initialize controllers
	controllers := router.Controllers{
		Cart:         controller.NewCartController(cartService),
		Order:        controller.NewOrderController(orderService),
		Coupon:       controller.NewCouponController(couponService),
		Review:       controller.NewReviewController(reviewService),
		Notification: controller.NewNotificationController(notificationService),
		Bakery:       controller.NewBakeryController(bakeryService),
		Product:      controller.NewProductController(productService),
		Category:     controller.NewCategoryController(categoryService),
		Address:      controller.NewAddressController(addressService),
		User:         controller.NewUserController(userService),
		WebSocket:    controller.NewWebSocketController(hub, cfg.CORS.AllowedOrigins),
	}

	if cfg.S3.Bucket != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			logger.Warn("S3 storage unavailable, image uploads disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			controllers.Upload = controller.NewUploadController(s3Storage, bakeryService)
		}
	}

	// Start schedulers
	couponScheduler := scheduler.NewCouponExpiryScheduler(cfg.Scheduler.CouponExpirySpec, couponService)
	if err := couponScheduler.Start(); err != nil {
		logger.Fatal("Failed to start coupon expiry scheduler", err)
	}
	defer couponScheduler.Stop()

	// Initialize middleware
	// 비활성화된 계정은 토큰이 유효해도 차단
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret).WithAccountStatus(userService)

	// Setup router
	engine := router.NewRouter(controllers, authMiddleware, cfg).Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	// 허브 종료 → 모든 WebSocket 연결 닫힘
	cancel()

	logger.Info("Server stopped successfully")
}
