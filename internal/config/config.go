package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the process configuration.
type Config struct {
	HTTPAddr            string  `yaml:"http_addr"`
	DatabaseURL         string  `yaml:"database_url"`
	DeliveryCostWithVat float64 `yaml:"delivery_cost_with_vat"`
	MigrateOnStart      bool    `yaml:"migrate_on_start"`
}

// Load reads config from a yaml file named by ADSETTLE_CONFIG, with
// environment variables as fallbacks for anything the file leaves out.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:            getenvDefault("ADSETTLE_HTTP_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DeliveryCostWithVat: getenvFloatDefault("ADSETTLE_DELIVERY_COST_WITH_VAT", 0),
		MigrateOnStart:      getenvBoolDefault("ADSETTLE_MIGRATE_ON_START", true),
	}

	if path := os.Getenv("ADSETTLE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("config: database url required")
	}
	if cfg.DeliveryCostWithVat < 0 {
		return cfg, errors.New("config: delivery cost must not be negative")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBoolDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
