package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override values from config.toml.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRedirectURI  = "GOOGLE_REDIRECT_URI"
	EnvAPIKey       = "YOUTUBE_API_KEY"
	EnvHost         = "YTVIEW_HOST"
	EnvPort         = "YTVIEW_PORT"
)

// LoadEnv loads variables from the given .env files into the process environment.
//
// Missing files are ignored; variables already present in the environment are not overwritten.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv copies credential and listener overrides from the environment into the config.
func ApplyEnv(c *Config) error {
	yt := &c.Credentials.YouTube
	for key, dst := range map[string]*string{
		EnvClientID:     &yt.ClientID,
		EnvClientSecret: &yt.ClientSecret,
		EnvRedirectURI:  &yt.RedirectURI,
		EnvAPIKey:       &yt.APIKey,
		EnvHost:         &c.Server.Host,
	} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvPort, v)
		}
		c.Server.Port = port
	}

	return nil
}
