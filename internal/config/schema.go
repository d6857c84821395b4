package config

import "time"

// Config is the top-level catalogctl configuration.
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Proxy  ProxyConfig  `mapstructure:"proxy"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// GitHubConfig identifies the directory repository and how to reach the API.
type GitHubConfig struct {
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	Branch      string `mapstructure:"branch"`
	RecordsPath string `mapstructure:"records_path"`
	APIBase     string `mapstructure:"api_base"`
	TokenEnv    string `mapstructure:"token_env"`
	Token       string `mapstructure:"-"` // resolved at runtime, never written
}

// ProxyConfig points at the auth proxy that holds the OAuth client secret.
type ProxyConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// AuthConfig holds the local side of the login flow.
type AuthConfig struct {
	RedirectURI string `mapstructure:"redirect_uri"`
}

// CacheConfig controls the directory cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
	Dir string        `mapstructure:"dir"`
}

// Directory returns the "owner/repo" slug of the directory repository.
func (g GitHubConfig) Directory() string {
	return g.Owner + "/" + g.Repo
}

// Validate reports the settings a command cannot run without.
func (c *Config) Validate() error {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return errMissingRepo
	}
	return nil
}
