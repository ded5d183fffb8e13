package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"spotisync/internal/shared"
	"spotisync/internal/tasks"
	"spotisync/internal/ui"
)

// TUI launches the interactive menu.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotisync-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, &tuiActions{r})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiActions adapts the runner's stage helpers to [ui.Actions].
type tuiActions struct {
	r *Runner
}

var _ ui.Actions = (*tuiActions)(nil)

// Scrape runs the scrape stage as a separate OS process. A browser hang or
// crash then cannot take the menu down with it; the only handoff between the
// stages is the store.
func (a *tuiActions) Scrape(ctx context.Context, url string) (string, error) {
	bin, err := os.Executable()
	if err != nil {
		bin = os.Args[0]
	}

	out, err := exec.CommandContext(ctx, bin, "scrape", url).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", shared.ErrScrapeFailed, msg)
	}
	return string(out), nil
}

func (a *tuiActions) Match(ctx context.Context, progress chan<- tasks.ProgressUpdate) (string, error) {
	return a.r.runMatch(ctx, progress, "")
}

func (a *tuiActions) Build(ctx context.Context, progress chan<- tasks.ProgressUpdate) (string, error) {
	return a.r.runBuild(ctx, progress)
}

func (a *tuiActions) Reset(ctx context.Context) error {
	engine, err := a.r.syncEngine(ctx, false)
	if err != nil {
		return err
	}
	return engine.Reset(ctx)
}
