package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytview/internal/server"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthURL prints the provider authorization URL for the configured client.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	authURL, err := r.oauth.AuthCodeURL(shared.GenerateID())
	if err != nil {
		return err
	}
	if r.config.Auth.VerifyState {
		r.logger.Warn("auth.verify_state is enabled; use `auth open` so the server can set the state cookie")
	}

	return r.writePlain("%s\n", authURL)
}

// AuthOpen opens the running server's /api/auth/youtube endpoint in the default browser.
func (r *Runner) AuthOpen(ctx context.Context, cmd *cli.Command) error {
	base := cmd.String("base")
	if base == "" {
		base = "http://" + r.config.Server.Addr()
	}

	target := strings.TrimRight(base, "/") + "/api/auth/" + server.Provider
	r.logger.Info("opening browser", "url", target)

	if err := r.openBrowser(target); err != nil {
		return fmt.Errorf("could not open browser, visit %s manually: %w", target, err)
	}

	return r.writePlain("%s %s\n", r.palette.OK("✓"), r.palette.Help("Complete sign-in in your browser"))
}
