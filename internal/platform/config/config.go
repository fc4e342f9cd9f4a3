package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/invest_portal/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// BackendBaseURL is the root of the investment backend API, e.g. "https://host/api".
	BackendBaseURL string
	HTTPTimeout    time.Duration

	BaseCurrency    string
	DefaultCurrency string

	// Pricing services
	ERAPIURL            string
	CoinGeckoURL        string
	PricingOffline      bool
	RateRefreshInterval time.Duration

	// Client storage
	StorageDriver string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// RateLimit applies per visitor profile, IPRateLimit per client IP in front of it.
	RateLimit      string
	IPRateLimit    string
	AllowedOrigins []string

	// Loaded profiles are dropped after ProfileIdleTTL without use, or when
	// more than MaxProfiles are loaded. Their stored state survives.
	MaxProfiles    int
	ProfileIdleTTL time.Duration

	// Flow limits, in base currency
	MinDeposit     decimal.Decimal
	MinWithdrawal  decimal.Decimal
	MaxUploadBytes int64
}

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("BACKEND_BASE_URL", "http://127.0.0.1:8000/api")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("BASE_CURRENCY", domain.DefaultBaseCurrency)
	v.SetDefault("DEFAULT_CURRENCY", "USDT")
	v.SetDefault("ER_API_URL", "https://open.er-api.com")
	v.SetDefault("COINGECKO_URL", "https://api.coingecko.com")
	v.SetDefault("PRICING_OFFLINE", false)
	v.SetDefault("RATE_REFRESH_INTERVAL", "0s")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("IP_RATE_LIMIT", "600-M")
	v.SetDefault("MAX_PROFILES", 10000)
	v.SetDefault("PROFILE_IDLE_TTL", "30m")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIN_DEPOSIT", "3000")
	v.SetDefault("MIN_WITHDRAWAL", "100")
	v.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		BackendBaseURL: strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		ERAPIURL:       strings.TrimRight(v.GetString("ER_API_URL"), "/"),
		CoinGeckoURL:   strings.TrimRight(v.GetString("COINGECKO_URL"), "/"),
		PricingOffline: v.GetBool("PRICING_OFFLINE"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		IPRateLimit:    v.GetString("IP_RATE_LIMIT"),
		MaxProfiles:    v.GetInt("MAX_PROFILES"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.BaseCurrency = strings.ToUpper(v.GetString("BASE_CURRENCY"))
	cfg.DefaultCurrency = strings.ToUpper(v.GetString("DEFAULT_CURRENCY"))
	if cfg.BaseCurrency != domain.DefaultBaseCurrency {
		return nil, fmt.Errorf("unsupported BASE_CURRENCY %q: only %s is supported", cfg.BaseCurrency, domain.DefaultBaseCurrency)
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = cfg.BaseCurrency
	}

	cfg.HTTPTimeout = durationOr(v, "HTTP_TIMEOUT", 15*time.Second)
	cfg.RateRefreshInterval = durationOr(v, "RATE_REFRESH_INTERVAL", 0)
	cfg.SessionTTL = durationOr(v, "SESSION_TTL", 24*time.Hour)
	cfg.ProfileIdleTTL = durationOr(v, "PROFILE_IDLE_TTL", 30*time.Minute)
	if cfg.MaxProfiles <= 0 {
		cfg.MaxProfiles = 10000
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	var err error
	if cfg.MinDeposit, err = decimal.NewFromString(v.GetString("MIN_DEPOSIT")); err != nil {
		return nil, fmt.Errorf("invalid MIN_DEPOSIT: %w", err)
	}
	if cfg.MinWithdrawal, err = decimal.NewFromString(v.GetString("MIN_WITHDRAWAL")); err != nil {
		return nil, fmt.Errorf("invalid MIN_WITHDRAWAL: %w", err)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 * 1024 * 1024
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
