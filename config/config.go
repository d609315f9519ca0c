package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	CatalogSourceFile = "file"
	CatalogSourceR2   = "r2"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	// Catalog
	CatalogSource string // file, r2
	CatalogPath   string
	// R2 Storage (remote catalog document)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2CatalogKey      string
	R2FetchTimeout    time.Duration
	// DB Config (optional durable state)
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Session
	SessionSecret    string
	SessionCookieTTL time.Duration
	// State lifetimes
	CartTTL   time.Duration
	CouponTTL time.Duration
	// Cache
	QueryCacheTTL time.Duration
	EnumsCacheTTL time.Duration
	// Business Rules
	MaxItemQuantity       int
	FreeShippingThreshold decimal.Decimal
	ShippingCost          decimal.Decimal
	RecentViewsLimit      int
	RecentSearchesLimit   int
	LikedReviewsLimit     int
	WhatsAppPhone         string
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// Analytics
	FBPixelID           string
	FBAccessToken       string
	FBAPIVersion        string
	KafkaBrokers        string
	KafkaAnalyticsTopic string
	AnalyticsBuffer     int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		CatalogSource: getEnv("CATALOG_SOURCE", CatalogSourceFile),
		CatalogPath:   getEnv("CATALOG_PATH", "data/catalog.json"),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2CatalogKey:      getEnv("R2_CATALOG_KEY", "catalog/catalog.json"),
		R2FetchTimeout:    getDurationEnv("R2_FETCH_TIMEOUT", 15*time.Second),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 1),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		SessionSecret:    getEnv("SESSION_SECRET", "default_secret_CHANGE_ME"),
		SessionCookieTTL: getDurationEnv("SESSION_COOKIE_TTL", 30*24*time.Hour),

		// Cart outlives the browsing session, coupon lives for the session only
		CartTTL:   getDurationEnv("CART_TTL", 30*24*time.Hour),
		CouponTTL: getDurationEnv("COUPON_TTL", 2*time.Hour),

		QueryCacheTTL: getDurationEnv("QUERY_CACHE_TTL", 5*time.Minute),
		EnumsCacheTTL: getDurationEnv("ENUMS_CACHE_TTL", time.Hour),

		MaxItemQuantity:       getIntEnv("MAX_ITEM_QUANTITY", 10),
		FreeShippingThreshold: getDecimalEnv("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(200)),
		ShippingCost:          getDecimalEnv("SHIPPING_COST", decimal.RequireFromString("29.90")),
		RecentViewsLimit:      getIntEnv("RECENT_VIEWS_LIMIT", 8),
		RecentSearchesLimit:   getIntEnv("RECENT_SEARCHES_LIMIT", 5),
		LikedReviewsLimit:     getIntEnv("LIKED_REVIEWS_LIMIT", 100),
		WhatsAppPhone:         getEnv("WHATSAPP_PHONE", "905555555555"),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 40),

		FBPixelID:           getEnv("FB_PIXEL_ID", ""),
		FBAccessToken:       getEnv("FB_ACCESS_TOKEN", ""),
		FBAPIVersion:        getEnv("FB_API_VERSION", "v19.0"),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", ""),
		KafkaAnalyticsTopic: getEnv("KAFKA_ANALYTICS_TOPIC", "storefront.analytics"),
		AnalyticsBuffer:     getIntEnv("ANALYTICS_BUFFER", 256),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	if cfg.SessionSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default session secret. Set SESSION_SECRET in production.")
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case CatalogSourceR2:
		if c.R2AccountID == "" || c.R2BucketName == "" || c.R2CatalogKey == "" {
			return fmt.Errorf("R2_ACCOUNT_ID, R2_BUCKET_NAME and R2_CATALOG_KEY are required when CATALOG_SOURCE=r2")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.MaxItemQuantity < 0 {
		return fmt.Errorf("MAX_ITEM_QUANTITY must not be negative")
	}
	if c.FreeShippingThreshold.IsNegative() || c.ShippingCost.IsNegative() {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if c.CouponTTL > c.CartTTL {
		return fmt.Errorf("COUPON_TTL (%s) must not exceed CART_TTL (%s)", c.CouponTTL, c.CartTTL)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
