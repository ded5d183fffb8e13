package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"spotisync/internal/graph"
	"spotisync/internal/shared"
	"spotisync/internal/tasks"
	"spotisync/internal/youtube"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	store  *graph.Store
	videos youtube.VideoSearcher
	engine tasks.SyncEngine
	logger *log.Logger
	output io.Writer
	input  io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Store  *graph.Store
	Videos youtube.VideoSearcher
	Engine tasks.SyncEngine
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Store == nil {
		opts.Store = graph.NewStore(nil, opts.Logger)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config: opts.Config,
		store:  opts.Store,
		videos: opts.Videos,
		engine: opts.Engine,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		scrapeCommand, matchCommand, createCommand, resetCommand, authCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// videoService returns the authenticated video platform client, running the
// OAuth flow on first use.
func (r *Runner) videoService(ctx context.Context) (youtube.VideoSearcher, error) {
	if r.videos != nil {
		return r.videos, nil
	}

	svc, err := youtube.Authenticate(ctx, r.config.YouTube, r.logger)
	if err != nil {
		return nil, err
	}

	interval := time.Duration(r.config.YouTube.RequestIntervalMS) * time.Millisecond
	r.videos = youtube.NewDataAPIService(svc, interval)
	return r.videos, nil
}

// syncEngine returns the pipeline engine, authenticating with the video
// platform first when the stage needs it.
func (r *Runner) syncEngine(ctx context.Context, needVideos bool) (tasks.SyncEngine, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	var videos youtube.VideoSearcher
	if needVideos {
		v, err := r.videoService(ctx)
		if err != nil {
			return nil, err
		}
		videos = v
	}

	return tasks.NewPipelineEngine(r.store, videos), nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
