package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytview/internal/formatter"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/urfave/cli/v3"
)

// credential uses --token when given, otherwise the configured API key.
func (r *Runner) credential(cmd *cli.Command) (services.Credential, error) {
	if token := cmd.String("token"); token != "" {
		return services.BearerCredential(token), nil
	}
	if key := r.config.Credentials.YouTube.APIKey; key != "" {
		return services.APIKeyCredential(key), nil
	}
	return services.Credential{}, fmt.Errorf("%w: YouTube API key is not configured (set %s or pass --token)",
		shared.ErrConfiguration, shared.EnvAPIKey)
}

// Playlists lists the playlists of --channel, or the token holder's own playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	channel := cmd.String("channel")
	cred, err := r.credential(cmd)
	if err != nil {
		return err
	}
	if channel == "" && cred.Kind() != services.CredentialBearer {
		return fmt.Errorf("%w: --channel is required without --token", shared.ErrBadRequest)
	}

	r.logger.Debug("listing playlists", "channel", channel, "credential", cred.Kind())
	playlists, err := r.playlists.ListPlaylists(ctx, services.PlaylistQuery{ChannelID: channel, Mine: channel == ""}, cred)
	if err != nil {
		return err
	}

	title := channel
	if title == "" {
		title = "My playlists"
	}

	return r.emit(cmd, title, playlists, func(f formatter.Format) ([]byte, error) {
		return formatter.Playlists(f, title, playlists)
	})
}

// PlaylistItems lists the videos of --playlist.
func (r *Runner) PlaylistItems(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	cred, err := r.credential(cmd)
	if err != nil {
		return err
	}

	r.logger.Debug("listing playlist items", "playlist", playlistID, "credential", cred.Kind())
	items, err := r.playlists.ListPlaylistItems(ctx, playlistID, cred)
	if err != nil {
		return err
	}

	return r.emit(cmd, playlistID, items, func(f formatter.Format) ([]byte, error) {
		return formatter.PlaylistItems(f, playlistID, items)
	})
}

// emit writes data as JSON (--json) or in --format, to --output or the runner's output.
func (r *Runner) emit(cmd *cli.Command, title string, data any, render func(formatter.Format) ([]byte, error)) error {
	out := cmd.String("output")

	if cmd.Bool("json") {
		if out == "" {
			return r.writeJSON(data, cmd.Bool("pretty"))
		}
		body, err := shared.MarshalJSON(data, cmd.Bool("pretty"))
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return r.save(out, body)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	body, err := render(format)
	if err != nil {
		return err
	}
	if out != "" {
		return r.save(out, body)
	}

	if format == formatter.Text {
		if err := r.writePlain("%s", r.palette.Header(title)); err != nil {
			return err
		}
	}
	return r.writePlain("%s", body)
}

func (r *Runner) save(path string, body []byte) error {
	if err := formatter.WriteExport(path, body); err != nil {
		return err
	}
	return r.writePlain("%s wrote %s\n", r.palette.OK("✓"), path)
}
