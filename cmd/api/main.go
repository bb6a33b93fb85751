package main

import (
	"context"
	"net/http"
	"os"

	"github.com/glowbeauty/glow-backend/api/routes"
	"github.com/glowbeauty/glow-backend/internal/cart"
	"github.com/glowbeauty/glow-backend/internal/catalog"
	checkoutsvc "github.com/glowbeauty/glow-backend/internal/checkout"
	"github.com/glowbeauty/glow-backend/internal/orders"
	"github.com/glowbeauty/glow-backend/internal/reviews"
	"github.com/glowbeauty/glow-backend/internal/state"
	"github.com/glowbeauty/glow-backend/internal/wishlist"
	"github.com/glowbeauty/glow-backend/pkg/clock"
	"github.com/glowbeauty/glow-backend/pkg/config"
	"github.com/glowbeauty/glow-backend/pkg/db"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/metrics"
	"github.com/glowbeauty/glow-backend/pkg/migrate"
	"github.com/glowbeauty/glow-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

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

	cartStore, err := state.NewRedisStore(redisClient, state.KindCart)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart store", err)
		os.Exit(1)
	}
	wishlistStore, err := state.NewRedisStore(redisClient, state.KindWishlist)
	if err != nil {
		logg.Error(context.Background(), "failed to build wishlist store", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: catalogService,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Store:    wishlistStore,
		Products: catalogService,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(dbClient.DB()),
		Products: catalogService,
		Ratings:  catalog.NewRepository(dbClient.DB()),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	checkoutManager, err := checkoutsvc.NewManager(checkoutsvc.ManagerParams{
		Scheduler:  clock.Real(),
		Cadence:    cfg.Checkout.StepCadence,
		SessionTTL: cfg.Checkout.SessionTTL,
		Orders:     orderService,
		Carts:      cartService,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(cfg, logg, routes.Services{
		Catalog:  catalogService,
		Reviews:  reviewService,
		Cart:     cartService,
		Wishlist: wishlistService,
		Orders:   orderService,
		Checkout: checkoutManager,
	}, routes.Health{
		DB:    dbClient,
		Redis: redisClient,
	}, requestMetrics, registry)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
