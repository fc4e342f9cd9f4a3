package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/invest_portal/internal/adapters/backend"
	"github.com/SscSPs/invest_portal/internal/adapters/httpx"
	"github.com/SscSPs/invest_portal/internal/adapters/pricing"
	"github.com/SscSPs/invest_portal/internal/adapters/storage"
	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/SscSPs/invest_portal/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/invest_portal/internal/core/ports/repositories"
	"github.com/SscSPs/invest_portal/internal/core/services"
	"github.com/SscSPs/invest_portal/internal/handlers"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/platform/config"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Per-IP rates of the login route and of the upstream rate refresh.
const (
	loginRate   = "5-M"
	refreshRate = "5-M"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	rates := services.NewRateStore(cfg.BaseCurrency, newRateSource(cfg, logger),
		services.WithRateCache(storage.Scope(store, "shared/"+portal.ScopeLocal, 0)),
		services.WithRefreshInterval(cfg.RateRefreshInterval),
		services.WithRateLogger(logger),
	)
	rates.Start(ctx)

	api := backend.NewClient(httpx.NewClient(logger, cfg.BackendBaseURL, cfg.HTTPTimeout))
	registry := portal.NewRegistry(cfg, rates, api, store, logger)

	limiters := handlers.Limiters{}
	for _, l := range []struct {
		name string
		rate string
		dst  **limiter.Limiter
	}{
		{"ip", cfg.IPRateLimit, &limiters.IP},
		{"api", cfg.RateLimit, &limiters.API},
		{"login", loginRate, &limiters.Login},
		{"refresh", refreshRate, &limiters.Refresh},
	} {
		*l.dst, err = middleware.NewMemoryLimiter(l.rate)
		if err != nil {
			logger.Error("Failed to create rate limiter", slog.String("limiter", l.name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ProfileHeader},
		ExposeHeaders:    []string{middleware.ProfileHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, registry, limiters)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.BackendBaseURL))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newStore opens the client storage backend selected by STORAGE_DRIVER.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KeyValueStore, func(), error) {
	if cfg.StorageDriver != config.StorageRedis {
		logger.Info("Using in-memory client storage")
		return storage.NewMemoryStore(), func() {}, nil
	}

	client := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("Redis client storage connected", slog.String("addr", cfg.RedisAddr))

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	return storage.NewRedisStore(client, "portal"), closeFn, nil
}

// newRateSource picks the live pricing services, or the bundled table offline.
func newRateSource(cfg *config.Config, logger *slog.Logger) clients.RateSource {
	if cfg.PricingOffline {
		logger.Info("Pricing offline, using bundled rates")
		return pricing.NewStaticSource(domain.DefaultRates())
	}
	http := httpx.NewRetryingClient(logger, cfg.HTTPTimeout)
	return pricing.NewCompositeSource(
		pricing.NewERAPISource(http, cfg.ERAPIURL, pricing.DefaultFiatAliases()),
		pricing.NewCoinGeckoSource(http, cfg.CoinGeckoURL, pricing.DefaultCoins()),
	)
}
