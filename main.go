package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/config"
	"github.com/aytac78/order-business-app-sub001/database"
	"github.com/aytac78/order-business-app-sub001/middlewares"
	"github.com/aytac78/order-business-app-sub001/router"
	"github.com/aytac78/order-business-app-sub001/services"
	"github.com/aytac78/order-business-app-sub001/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	if cfg.JWTSecret != "" {
		utils.SetJWTSecret(cfg.JWTSecret)
	} else {
		utils.ErrorLogger.Println("Warning: JWT_SECRET not set, using development secret")
	}

	// Set gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if err := database.SeedVenues(db, cfg.SeedVenues); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed venues: %v", err)
	}

	// Change feed order -> board dapur
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = cfg.ChangePollInterval
	monitor.Start()
	defer monitor.Stop()

	store := services.NewGormOrderStore(db, monitor)

	// Patch yang gagal ditulis dicoba lagi di background
	retrier := services.NewWriteRetrier(store, cfg.WriteRetryInterval)
	retrier.Start()
	defer retrier.Stop()

	kitchenSvc := services.NewKitchenService(store, services.BoardOptions{
		Retrier:      retrier,
		Listener:     services.NewKDSPublisher(db),
		OverdueAfter: cfg.OverdueAfter,
	})
	defer kitchenSvc.Close()

	rateLimiter := middlewares.NewRateLimiter(cfg.RateLimit)
	r := router.SetupRouter(db, store, kitchenSvc, rateLimiter.RateLimit())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}

	// sisa patch yang belum tertulis
	if n := retrier.Flush(ctx); n > 0 {
		utils.ErrorLogger.Printf("%d kitchen updates could not be written before shutdown", n)
	}
}
