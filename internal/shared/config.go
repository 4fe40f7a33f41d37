package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// It is built once at process start and passed by pointer to every component; nothing reads credentials from the
// environment after [LoadConfig] / [ApplyEnv] return.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Auth        AuthConfig        `toml:"auth"`
	Upstream    UpstreamConfig    `toml:"upstream"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	ListingPath    string   `toml:"listing_path"`
	AllowedOrigins []string `toml:"allowed_origins"`
	Metrics        bool     `toml:"metrics"`
	RateLimit      float64  `toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst      int      `toml:"rate_burst"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains the OAuth client registration and the static API key.
type YouTubeConfig struct {
	ClientID             string `toml:"client_id"`
	ClientSecret         string `toml:"client_secret"`
	RedirectURI          string `toml:"redirect_uri"`
	APIKey               string `toml:"api_key"`
	IncludeGrantedScopes bool   `toml:"include_granted_scopes"`
}

// AuthConfig controls the credential fallback policy of the proxy endpoints.
type AuthConfig struct {
	// Strict rejects requests without a session with 401 instead of using the API key.
	Strict bool `toml:"strict"`
	// RefreshOnExpiry exchanges the refresh token cookie for a new access token when the access token is gone.
	RefreshOnExpiry bool `toml:"refresh_on_expiry"`
	// VerifyState enforces the OAuth state parameter on the callback.
	VerifyState bool `toml:"verify_state"`
}

// UpstreamConfig holds the video platform and identity provider endpoints.
type UpstreamConfig struct {
	BaseURL        string `toml:"base_url"`
	AuthURL        string `toml:"auth_url"`
	TokenURL       string `toml:"token_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Timeout returns the outbound request timeout as a [time.Duration].
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// Addr returns the host:port pair the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: upstream timeout must be positive", ErrInvalidConfig)
	}
	if c.Upstream.BaseURL == "" || c.Upstream.AuthURL == "" || c.Upstream.TokenURL == "" {
		return fmt.Errorf("%w: upstream endpoints must be set", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("%w: rate limit values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
