package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	LogLevel           string
	CORSAllowedOrigins []string
	RateLimit          string
	MigrationsPath     string

	// Ledger is passed explicitly into every posting and rollup call.
	Ledger domain.LedgerSettings
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("LEDGER_DEFAULT_REVENUE_ACCOUNT", string(domain.OPDRevenue))
	viper.SetDefault("LEDGER_DEFAULT_PAID_METHOD", string(domain.PaidCash))
	viper.SetDefault("LEDGER_DEFAULT_SHARE_PERCENT", "")
	viper.SetDefault("LEDGER_TIMEZONE", "Asia/Karachi")
	viper.SetDefault("LEDGER_MAX_ROLLUP_DAYS", 366)

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory ledger store.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	ledger, err := loadLedgerSettings()
	if err != nil {
		return nil, err
	}
	cfg.Ledger = ledger

	return cfg, nil
}

func loadLedgerSettings() (domain.LedgerSettings, error) {
	settings := domain.DefaultLedgerSettings()

	revenue, err := domain.ParseRevenueAccount(viper.GetString("LEDGER_DEFAULT_REVENUE_ACCOUNT"))
	if err != nil {
		return settings, fmt.Errorf("invalid LEDGER_DEFAULT_REVENUE_ACCOUNT: %w", err)
	}
	settings.DefaultRevenueAccount = revenue

	paid, err := domain.ParsePaidMethod(viper.GetString("LEDGER_DEFAULT_PAID_METHOD"))
	if err != nil {
		return settings, fmt.Errorf("invalid LEDGER_DEFAULT_PAID_METHOD: %w", err)
	}
	settings.DefaultPaidMethod = paid

	if raw := strings.TrimSpace(viper.GetString("LEDGER_DEFAULT_SHARE_PERCENT")); raw != "" {
		share, err := decimal.NewFromString(raw)
		if err != nil || share.IsNegative() || share.GreaterThan(decimal.NewFromInt(100)) {
			return settings, fmt.Errorf("invalid LEDGER_DEFAULT_SHARE_PERCENT '%s': must be a number between 0 and 100", raw)
		}
		settings.DefaultSharePercent = &share
	}

	loc, err := time.LoadLocation(viper.GetString("LEDGER_TIMEZONE"))
	if err != nil {
		return settings, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
	}
	settings.Location = loc

	settings.MaxRollupDays = viper.GetInt("LEDGER_MAX_ROLLUP_DAYS")
	if settings.MaxRollupDays < 0 {
		return settings, fmt.Errorf("LEDGER_MAX_ROLLUP_DAYS must not be negative")
	}
	return settings, nil
}
