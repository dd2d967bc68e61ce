package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when HUBSPOT_ACCESS_TOKEN is not set.
var ErrMissingToken = errors.New("HUBSPOT_ACCESS_TOKEN deve estar configurado")

type Config struct {
	HubSpotToken   string
	HubSpotBaseURL string
	HubSpotTimeout time.Duration

	Port            string
	CheckDuplicates bool
	AllowedOrigins  []string

	DatabaseURL string
	AMQPURL     string
	LogLevel    string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		HubSpotToken:    strings.TrimSpace(os.Getenv("HUBSPOT_ACCESS_TOKEN")),
		HubSpotBaseURL:  getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		HubSpotTimeout:  10 * time.Second,
		Port:            getEnv("PORT", "8000"),
		CheckDuplicates: true,
		AllowedOrigins:  []string{"*"},
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.HubSpotToken == "" {
		return nil, ErrMissingToken
	}

	if raw := os.Getenv("HUBSPOT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("HUBSPOT_TIMEOUT inválido %q: %w", raw, err)
		}
		cfg.HubSpotTimeout = d
	}

	if raw := os.Getenv("DEALSYNC_CHECK_DUPLICATES"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("DEALSYNC_CHECK_DUPLICATES inválido %q: %w", raw, err)
		}
		cfg.CheckDuplicates = b
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
