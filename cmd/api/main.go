package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"supermercado-api/internal/client"
	"supermercado-api/internal/config"
	"supermercado-api/internal/logger"
	"supermercado-api/internal/repository"
	"supermercado-api/internal/server"
	"supermercado-api/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := client.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	siteConfigRepo := repository.NewSiteConfigRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	siteConfigService := service.NewSiteConfigService(
		siteConfigRepo,
		time.Duration(cfg.SiteConfigCacheTTLSeconds)*time.Second,
		log,
	)
	checkoutService := service.NewCheckoutService(db, productRepo, couponRepo, orderRepo, siteConfigService, log)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, announcementRepo, log)
	couponService := service.NewCouponService(couponRepo)
	statsService := service.NewStatsService(orderRepo)

	srv := server.NewServer(cfg, log, checkoutService, catalogService, couponService, siteConfigService, statsService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
