package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytview/internal/formatter"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/desertthunder/ytview/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the playlists of --channel (or the token holder) and their items to --dir.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	channel := cmd.String("channel")
	cred, err := r.credential(cmd)
	if err != nil {
		return err
	}
	if channel == "" && cred.Kind() != services.CredentialBearer {
		return fmt.Errorf("%w: --channel is required without --token", shared.ErrBadRequest)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Info(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()

	exporter := tasks.NewExporter(r.playlists, cred)
	result, err := exporter.ExportChannel(ctx, progress, services.PlaylistQuery{ChannelID: channel, Mine: channel == ""}, tasks.ExportOpts{
		Format:     format,
		JSON:       cmd.Bool("json"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if err := r.writePlain("%s", r.palette.Header("Export complete")); err != nil {
		return err
	}
	if err := r.writePlain("Playlists: %d  %s  %s\n",
		result.TotalPlaylists,
		r.palette.OK(fmt.Sprintf("%d exported", result.Successful)),
		r.palette.Warn(fmt.Sprintf("%d failed", result.Failed)),
	); err != nil {
		return err
	}
	for _, res := range result.Results {
		if res.Err == nil {
			continue
		}
		if err := r.writePlain("  %s %s: %s\n", r.palette.Err("✗"), res.Title, res.Error); err != nil {
			return err
		}
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
