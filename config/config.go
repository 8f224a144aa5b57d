package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	DBUrl          string
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string

	EmailProvider      string
	EmailFromAddress   string
	EmailFromName      string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		EmailProvider:      os.Getenv("EMAIL_PROVIDER"),
		EmailFromAddress:   os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:          os.Getenv("SES_REGION"),
		SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "noop"
	}

	// An empty DBUrl selects the in-memory store, so no default is applied.

	expiryHours := 72
	if s := os.Getenv("JWT_EXPIRY_HOURS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			expiryHours = v
		}
	}
	cfg.JWTExpiry = time.Duration(expiryHours) * time.Hour

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}
