package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kmx/internal/formatter"
	"github.com/desertthunder/kmx/internal/repositories"
	"github.com/desertthunder/kmx/internal/services"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/desertthunder/kmx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *services.Client
	renderer   *formatter.Renderer
	aggregator *tasks.ListAggregator
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *services.Client
	Renderer   *formatter.Renderer
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Client == nil {
		opts.Client = services.NewClientFromConfig(opts.Config, opts.HTTPClient, opts.Logger)
	}
	if opts.Renderer == nil {
		renderer, err := formatter.NewRendererFromConfig(opts.Config.Render)
		if err != nil {
			opts.Logger.Warn("failed to load templates, using built-in set", "error", err)
			renderer, _ = formatter.DefaultRenderer(opts.Config.Render.Locale)
		}
		opts.Renderer = renderer
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		renderer:   opts.Renderer,
		aggregator: tasks.NewListAggregator(opts.Client, opts.Renderer, opts.Config.API.Concurrency, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the logger used by the runner, its client and its aggregator.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.client.SetLogger(logger)
	r.aggregator = tasks.NewListAggregator(r.client, r.renderer, r.config.API.Concurrency, logger)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, getCommand, deleteCommand, postCommand, listCommand, exportCommand,
		browseCommand, serveCommand, templatesCommand, historyCommand, sizeCommand, paramCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openSnapshots opens the configured database and returns a snapshot repository with its closer.
func (r *Runner) openSnapshots() (*repositories.SnapshotRepository, func() error, error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repositories.NewSnapshotRepository(db), closer(db), nil
}

func closer(db *sql.DB) func() error {
	return func() error { return db.Close() }
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
