package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/desertthunder/ytview/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configured  bool
	playlists   services.PlaylistService
	oauth       services.OAuthService
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	palette     *ui.Palette
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config skips loading config.toml and the environment in [Runner.Setup].
type RunnerOpts struct {
	Config      *shared.Config
	Playlists   services.PlaylistService
	OAuth       services.OAuthService
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configured := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		configured:  configured,
		playlists:   opts.Playlists,
		oauth:       opts.OAuth,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		palette:     ui.Default,
		openBrowser: opts.OpenBrowser,
	}
}

// Setup loads config.toml (when present), applies .env and environment overrides, validates the result and builds
// the upstream clients. It runs before every command.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if !r.configured {
		config, err := loadConfig(cmd.String("config"), cmd.String("env-file"))
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configured = true
	}

	level := r.config.Logging.Level
	if l := cmd.String("log-level"); l != "" {
		level = l
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return ctx, fmt.Errorf("%w: log level %q", shared.ErrInvalidConfig, level)
	}

	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: r.config.Upstream.Timeout()}
	}
	if r.playlists == nil {
		r.playlists = services.NewYouTubeService(r.config.Upstream.BaseURL, r.httpClient)
	}
	if r.oauth == nil {
		r.oauth = services.NewGoogleOAuth(r.config.Credentials.YouTube, r.config.Upstream, r.httpClient)
	}

	return ctx, nil
}

func loadConfig(path, envFile string) (*shared.Config, error) {
	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := shared.LoadEnv(envFile); err != nil {
		return nil, err
	}
	if err := shared.ApplyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, configCommand, authCommand, playlistsCommand, itemsCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
