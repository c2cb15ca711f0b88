package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL      string        `validate:"required_if=StorageDriver postgres"`
	Port             string        `validate:"required,numeric"`
	IsProduction     bool
	EnableDBCheck    bool
	StorageDriver    string        `validate:"oneof=postgres memory"`
	AutoMigrate      bool
	DBConnectTimeout time.Duration `validate:"gt=0"`

	JWTSecret string `validate:"required"`
	JWTIssuer string

	RateLimit          string `validate:"required"`
	CORSAllowedOrigins []string

	// Placement and journal rules
	MaxOpenApplications int `validate:"gte=1"`
	MinNarrativeLength  int `validate:"gte=0"`
	GradeMin            decimal.Decimal
	GradeMax            decimal.Decimal
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "internship-placement-app")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MAX_OPEN_APPLICATIONS", 3)
	v.SetDefault("MIN_NARRATIVE_LENGTH", 50)
	v.SetDefault("GRADE_MIN", "0")
	v.SetDefault("GRADE_MAX", "100")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
		AutoMigrate:         v.GetBool("AUTO_MIGRATE"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		MaxOpenApplications: v.GetInt("MAX_OPEN_APPLICATIONS"),
		MinNarrativeLength:  v.GetInt("MIN_NARRATIVE_LENGTH"),
	}

	timeout, err := time.ParseDuration(v.GetString("DB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}
	cfg.DBConnectTimeout = timeout

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.GradeMin, err = decimal.NewFromString(v.GetString("GRADE_MIN")); err != nil {
		return nil, fmt.Errorf("invalid GRADE_MIN: %w", err)
	}
	if cfg.GradeMax, err = decimal.NewFromString(v.GetString("GRADE_MAX")); err != nil {
		return nil, fmt.Errorf("invalid GRADE_MAX: %w", err)
	}
	if cfg.GradeMax.LessThan(cfg.GradeMin) {
		return nil, fmt.Errorf("GRADE_MAX %s is below GRADE_MIN %s", cfg.GradeMax, cfg.GradeMin)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

// Policy returns the rule limits enforced by the services.
func (c *Config) Policy() domain.Policy {
	return domain.Policy{
		MaxOpenApplications: c.MaxOpenApplications,
		MinNarrativeLength:  c.MinNarrativeLength,
		GradeMin:            c.GradeMin,
		GradeMax:            c.GradeMax,
	}
}
