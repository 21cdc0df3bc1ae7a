package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/verilocal/admin-gateway/api/routes"
	"github.com/verilocal/admin-gateway/internal/checkout"
	"github.com/verilocal/admin-gateway/internal/cityregions"
	"github.com/verilocal/admin-gateway/internal/geo"
	"github.com/verilocal/admin-gateway/internal/organizations"
	"github.com/verilocal/admin-gateway/internal/packages"
	"github.com/verilocal/admin-gateway/internal/pricing"
	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/metrics"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	platformClient, err := platform.NewClient(cfg.Platform, platform.WithMetrics(metrics.NewPlatformMetrics(registry)))
	if err != nil {
		logg.Error(context.Background(), "failed to create platform client", err)
		os.Exit(1)
	}

	packageService, err := packages.NewService(platformClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create package service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(platformClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	pricingResolver, err := pricing.NewResolver(platformClient, cfg.Pricing, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing resolver", err)
		os.Exit(1)
	}

	cityRegionService, err := cityregions.NewService(platformClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create city region service", err)
		os.Exit(1)
	}

	organizationService, err := organizations.NewService(platformClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create organization service", err)
		os.Exit(1)
	}

	geoService, err := geo.NewService(platformClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create geo service", err)
		os.Exit(1)
	}

	sessionStore, err := checkout.NewStore(redisClient, cfg.Checkout.SessionTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout session store", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(sessionStore, organizationService, platformClient, pricingResolver, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			registry,
			packageService,
			pricingService,
			pricingResolver,
			cityRegionService,
			geoService,
			checkoutService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "admin api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
