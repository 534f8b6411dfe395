package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret    = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer    = "currency-exchange-app"
	defaultHomeCurrency = "PYG"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// HomeCurrency is the pivot currency every rate is quoted against.
	HomeCurrency               string
	RateChangeThresholdPercent decimal.Decimal

	// Redis is optional; without it groups and sessions stay in process.
	RedisURL           string
	RedisChannelPrefix string
	SessionTTL         time.Duration

	CORSAllowedOrigins []string
	LoginRateLimit     string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	PosthogAPIKey string

	WSSendBuffer   int
	WSPingInterval time.Duration

	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		HomeCurrency:           strings.ToUpper(strings.TrimSpace(v.GetString("HOME_CURRENCY"))),
		RedisURL:               v.GetString("REDIS_URL"),
		RedisChannelPrefix:     v.GetString("REDIS_CHANNEL_PREFIX"),
		LoginRateLimit:         v.GetString("LOGIN_RATE_LIMIT"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFile:                v.GetString("LOG_FILE"),
		LogMaxSizeMB:           v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:          v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAgeDays:          v.GetInt("LOG_MAX_AGE_DAYS"),
		PosthogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		WSSendBuffer:           v.GetInt("WS_SEND_BUFFER"),
		BootstrapAdminUsername: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}
	if len(cfg.HomeCurrency) != 3 {
		log.Printf("Warning: Invalid value for HOME_CURRENCY ('%s'). Defaulting to %s.\n", cfg.HomeCurrency, defaultHomeCurrency)
		cfg.HomeCurrency = defaultHomeCurrency
	}
	if cfg.WSSendBuffer <= 0 {
		log.Printf("Warning: Invalid value for WS_SEND_BUFFER (%d). Defaulting to 32.\n", cfg.WSSendBuffer)
		cfg.WSSendBuffer = 32
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.SessionTTL = durationOrDefault(v, "SESSION_TTL", 12*time.Hour)
	cfg.WSPingInterval = durationOrDefault(v, "WS_PING_INTERVAL", 30*time.Second)
	cfg.RateChangeThresholdPercent = decimalOrDefault(v, "RATE_CHANGE_THRESHOLD_PERCENT", decimal.NewFromInt(1))
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("HOME_CURRENCY", defaultHomeCurrency)
	v.SetDefault("RATE_CHANGE_THRESHOLD_PERCENT", "1")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_CHANNEL_PREFIX", "cea:")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("WS_SEND_BUFFER", 32)
	v.SetDefault("WS_PING_INTERVAL", "30s")
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
}

func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func decimalOrDefault(v *viper.Viper, key string, fallback decimal.Decimal) decimal.Decimal {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
