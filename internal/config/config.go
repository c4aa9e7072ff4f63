// Package config reads blogdeck settings from the environment.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"blogdeck/internal/listview"
	"blogdeck/internal/models"
)

// Config holds runtime settings
type Config struct {
	APIURL   string
	DBPath   string
	Addr     string
	PageSize int
	Scope    listview.Scope
}

// Defaults
const (
	DefaultAPIURL = "http://localhost:8787"
	DefaultDBPath = "./blogdeck.db"
	DefaultAddr   = "127.0.0.1:3000"
)

// Load reads BLOGDECK_* variables, falling back to defaults for anything
// unset or invalid. Only an unusable API URL is an error.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIURL:   DefaultAPIURL,
		DBPath:   DefaultDBPath,
		Addr:     DefaultAddr,
		PageSize: models.DefaultPageLimit,
		Scope:    listview.ScopeCurrentPage,
	}

	if v := getenv("BLOGDECK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cfg, fmt.Errorf("BLOGDECK_API_URL %q is not an http(s) URL", cfg.APIURL)
	}

	if v := getenv("BLOGDECK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if !filepath.IsAbs(cfg.DBPath) {
		cwd, _ := os.Getwd()
		cfg.DBPath = filepath.Join(cwd, cfg.DBPath)
	}

	if v := getenv("BLOGDECK_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := getenv("BLOGDECK_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("Warning: ignoring invalid BLOGDECK_PAGE_SIZE %q", v)
		} else {
			cfg.PageSize = n
		}
	}

	if v := getenv("BLOGDECK_SEARCH_SCOPE"); v != "" {
		scope, ok := listview.ParseScope(v)
		if !ok {
			log.Printf("Warning: unknown BLOGDECK_SEARCH_SCOPE %q, using %q", v, scope)
		}
		cfg.Scope = scope
	}

	return cfg, nil
}
