// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a .env file with credential overrides",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error); overrides logging.level",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, csv or md",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "OAuth access token to use instead of the API key",
		},
	}
}

// serveCommand runs the HTTP backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP backend (OAuth flow & playlist proxy)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with secrets masked",
				Action: r.ConfigShow,
			},
		},
	}
}

// authCommand handles the OAuth flow from the terminal
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "OAuth helpers",
		Commands: []*cli.Command{
			{
				Name:   "url",
				Usage:  "Print the provider authorization URL",
				Action: r.AuthURL,
			},
			{
				Name:  "open",
				Usage: "Open the server's sign-in endpoint in the browser",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "base",
						Usage: "Base URL of a running server (default: http://{server.host}:{server.port})",
					},
				},
				Action: r.AuthOpen,
			},
		},
	}
}

// playlistsCommand lists a channel's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List the playlists of a channel",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "channel",
				Usage: "Channel ID (omit with --token to list your own playlists)",
			},
		}, outputFlags()...),
		Action: r.Playlists,
	}
}

// itemsCommand lists the videos in a playlist
func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "items",
		Aliases: []string{"videos"},
		Usage:   "List the items of a playlist",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "playlist",
				Usage:    "Playlist ID",
				Required: true,
			},
		}, outputFlags()...),
		Action: r.PlaylistItems,
	}
}

// exportCommand writes a channel's playlists and their items to a directory
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export every playlist of a channel with its items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "channel",
				Usage: "Channel ID (omit with --token to export your own playlists)",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "OAuth access token to use instead of the API key",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv or md",
				Value:   "csv",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Write JSON files instead of --format",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: ytview_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent playlist fetches",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}
