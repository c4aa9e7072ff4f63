package config

import (
	"path/filepath"
	"testing"

	"blogdeck/internal/listview"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Addr != DefaultAddr || cfg.PageSize != 10 || cfg.Scope != listview.ScopeCurrentPage {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !filepath.IsAbs(cfg.DBPath) || filepath.Base(cfg.DBPath) != "blogdeck.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"BLOGDECK_API_URL":      "https://api.example.com",
		"BLOGDECK_DB_PATH":      "/var/lib/blogdeck/state.db",
		"BLOGDECK_ADDR":         ":8081",
		"BLOGDECK_PAGE_SIZE":    "25",
		"BLOGDECK_SEARCH_SCOPE": "fetched",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" || cfg.DBPath != "/var/lib/blogdeck/state.db" ||
		cfg.Addr != ":8081" || cfg.PageSize != 25 || cfg.Scope != listview.ScopeAllFetched {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"BLOGDECK_PAGE_SIZE":    "-3",
		"BLOGDECK_SEARCH_SCOPE": "everything",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != 10 || cfg.Scope != listview.ScopeCurrentPage {
		t.Fatalf("invalid values not replaced by defaults: %+v", cfg)
	}

	if _, err := load(env(map[string]string{"BLOGDECK_API_URL": "not a url"})); err == nil {
		t.Fatalf("expected error for bad API URL")
	}
}
