// Package config loads catalogctl settings from the config file, a local
// .env file, and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var errMissingRepo = errors.New("no directory repository configured: set github.owner and github.repo (run `catalogctl init`)")

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "config.yml")
}

// DefaultCacheDir returns the default location for the on-disk catalog
// snapshot and session file.
func DefaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "catalogctl")
}

// Load reads the config from disk (or env). Returns a default config if no
// file exists yet — the init command creates it.
func Load(path string) (*Config, error) {
	// A .env in the working directory supplies tokens during development.
	// Real environment variables win over anything it sets.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("github.branch", "main")
	v.SetDefault("github.records_path", "_projects")
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.token_env", "GITHUB_TOKEN")
	v.SetDefault("proxy.base_url", "https://auth.opencatalog.dev")
	v.SetDefault("auth.redirect_uri", "http://127.0.0.1:8428/callback")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.dir", DefaultCacheDir())

	v.SetEnvPrefix("CATALOGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("CATALOGCTL_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — the init command creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve token from env (never stored in file).
	tokenEnv := cfg.GitHub.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}
	cfg.GitHub.Token = os.Getenv(tokenEnv)
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("CATALOGCTL_GITHUB_TOKEN")
	}

	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)

	return &cfg, nil
}

// Save writes the config to the given path (DefaultPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// A minimal file: runtime-only and defaulted fields stay out of it.
	out := map[string]any{
		"github": map[string]any{
			"owner":        cfg.GitHub.Owner,
			"repo":         cfg.GitHub.Repo,
			"branch":       cfg.GitHub.Branch,
			"records_path": cfg.GitHub.RecordsPath,
		},
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(out)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
