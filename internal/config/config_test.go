package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("ADSETTLE_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without database url")
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	t.Setenv("ADSETTLE_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/adsettle")
	t.Setenv("ADSETTLE_HTTP_ADDR", ":9090")
	t.Setenv("ADSETTLE_DELIVERY_COST_WITH_VAT", "2750")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.DeliveryCostWithVat != 2750 {
		t.Fatalf("expected 2750, got %v", cfg.DeliveryCostWithVat)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("expected migrate on start by default")
	}
}

func TestLoadYAMLOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "http_addr: \":7070\"\ndatabase_url: postgres://db/adsettle\ndelivery_cost_with_vat: 3300\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ADSETTLE_CONFIG", path)
	t.Setenv("DATABASE_URL", "postgres://env/ignored")
	t.Setenv("ADSETTLE_HTTP_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected :7070, got %s", cfg.HTTPAddr)
	}
	if cfg.DatabaseURL != "postgres://db/adsettle" {
		t.Fatalf("expected yaml database url, got %s", cfg.DatabaseURL)
	}
	if cfg.DeliveryCostWithVat != 3300 {
		t.Fatalf("expected 3300, got %v", cfg.DeliveryCostWithVat)
	}
}

func TestLoadRejectsNegativeDeliveryCost(t *testing.T) {
	t.Setenv("ADSETTLE_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/adsettle")
	t.Setenv("ADSETTLE_DELIVERY_COST_WITH_VAT", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative delivery cost")
	}
}
