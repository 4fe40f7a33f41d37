package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytview/internal/server"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP backend until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	yt := r.config.Credentials.YouTube
	if yt.APIKey == "" {
		r.logger.Warn("YouTube API key is not configured; requests without a session will fail")
	}
	if yt.ClientID == "" || yt.ClientSecret == "" {
		r.logger.Warn("OAuth client is not configured; sign-in is disabled")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(r.config, server.Options{
		Playlists: r.playlists,
		OAuth:     r.oauth,
		Logger:    shared.WithLogger(r.logger, "component", "server"),
	})
	return srv.ListenAndServe(ctx)
}
