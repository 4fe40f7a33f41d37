package main

import (
	"context"
	"os"

	"github.com/desertthunder/ytview/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "ytview",
		Usage:    "Browse YouTube channel playlists through an OAuth-aware proxy",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.Setup,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
