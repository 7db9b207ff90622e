package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtabs/internal/repositories"
	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/desertthunder/songtabs/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	tabs       services.TabService
	api        *services.APIService
	sessions   *repositories.UserSession
	cache      *repositories.TabCacheRepository
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	engine     *tasks.SongEngine
	openURL    func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Tabs       services.TabService
	API        *services.APIService
	Sessions   *repositories.UserSession
	Cache      *repositories.TabCacheRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	OpenURL    func(string) error
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	var cache tasks.TabCacher
	if opts.Cache != nil {
		cache = opts.Cache
	}
	engine := tasks.NewSongEngine(opts.Tabs, cache)

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		tabs:       opts.Tabs,
		api:        opts.API,
		sessions:   opts.Sessions,
		cache:      opts.Cache,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		engine:     engine,
		openURL:    opts.OpenURL,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songsCommand, tabCommand, transposeCommand, videosCommand,
		tuiCommand, apiCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// restoreSession hands the remembered user, if any, to the tab service.
func (r *Runner) restoreSession() {
	if r.sessions == nil || r.tabs == nil {
		return
	}

	user, err := r.sessions.Current()
	if err != nil {
		r.logger.Debug("no stored session", "error", err)
		return
	}

	r.tabs.SetUser(user)
	r.logger.Debug("restored session", "email", user.Email)
}

// requireUser fails with a sign-in hint when no user is signed in.
func (r *Runner) requireUser() error {
	if r.tabs == nil {
		return fmt.Errorf("%w: tab service not initialized", shared.ErrServiceUnavailable)
	}
	if user := r.tabs.User(); user == nil || !user.Authenticated() {
		return fmt.Errorf("%w: run 'songtabs auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
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
