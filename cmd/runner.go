package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/repositories"
	"github.com/desertthunder/setlist/internal/setlist"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	logger      *log.Logger
	output      io.Writer
	store       repositories.SnapshotStore
	ownsStore   bool
	engine      *setlist.Engine
	clipboard   func(string) error
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from --config when the command runs, and a nil Store is opened from the config.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Logger      *log.Logger
	Output      io.Writer
	Store       repositories.SnapshotStore
	Engine      *setlist.Engine
	Clipboard   func(string) error
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		logger:      opts.Logger,
		output:      opts.Output,
		store:       opts.Store,
		engine:      opts.Engine,
		clipboard:   opts.Clipboard,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, showCommand, songCommand, moveCommand, lockCommand, mixCommand,
		renameCommand, importCommand, exportCommand, printCommand, resetCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// configure resolves the config, log level and engine before any action runs.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil || cmd.IsSet("config") {
		path := cmd.String("config")
		config, err := loadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configPath = path
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)

	if r.engine == nil {
		locale, err := setlist.ParseLocale(r.config.Setlist.Locale)
		if err != nil {
			return ctx, fmt.Errorf("%w: setlist.locale %q: %v", shared.ErrInvalidConfig, r.config.Setlist.Locale, err)
		}
		r.engine = setlist.New(setlist.WithLocale(locale))
	}
	return ctx, nil
}

// loadConfig reads path, or returns the defaults when there is no file there.
func loadConfig(path string) (*shared.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return shared.DefaultConfig(), nil
	}
	return shared.LoadConfig(path)
}

// Close releases the store when the runner opened it.
func (r *Runner) Close() error {
	if r.store == nil || !r.ownsStore {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	r.ownsStore = false
	return err
}

func (r *Runner) openStore(ctx context.Context) (repositories.SnapshotStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	store, err := repositories.NewStore(ctx, r.config)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	r.store = store
	r.ownsStore = true
	return store, nil
}

// load returns the stored board, or the demo board when nothing usable is stored.
func (r *Runner) load(ctx context.Context) (models.State, error) {
	store, err := r.openStore(ctx)
	if err != nil {
		return models.State{}, err
	}
	return repositories.LoadOrDemo(ctx, store, r.engine.Demo, r.logger), nil
}

func (r *Runner) save(ctx context.Context, state models.State) error {
	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, &state); err != nil {
		return fmt.Errorf("failed to save setlist: %w", err)
	}
	r.logger.Debug("saved setlist", "songs", state.Len())
	return nil
}

// update loads the board, applies fn and saves the result.
func (r *Runner) update(ctx context.Context, fn func(models.State) (models.State, error)) (models.State, error) {
	state, err := r.load(ctx)
	if err != nil {
		return state, err
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}
	return next, r.save(ctx, next)
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
