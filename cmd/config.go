package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to --path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("%s wrote %s\n", r.palette.OK("✓"), path)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// ConfigShow prints the effective configuration as TOML with secrets masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	shown := *r.config
	shown.Credentials.YouTube.ClientSecret = mask(shown.Credentials.YouTube.ClientSecret)
	shown.Credentials.YouTube.APIKey = mask(shown.Credentials.YouTube.APIKey)

	if err := toml.NewEncoder(r.output).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
