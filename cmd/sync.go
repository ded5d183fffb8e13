package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"spotisync/internal/formatter"
	"spotisync/internal/tasks"
)

// Match searches the video platform for every pending song and records hits.
func (r *Runner) Match(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		result, _, err := r.matchResult(ctx, nil, cmd.String("report"))
		if err != nil {
			return err
		}
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("Matching pending songs...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ListSongs:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SearchVideos:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary, err := r.runMatch(ctx, progressCh, cmd.String("report"))
	close(progressCh)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Match Complete")
	r.writePlain("%s", summary)
	return nil
}

// matchResult executes the match stage and writes the not-found report when
// there is one, returning the result and the report path.
func (r *Runner) matchResult(ctx context.Context, progress chan<- tasks.ProgressUpdate, reportPath string) (*tasks.MatchResult, string, error) {
	engine, err := r.syncEngine(ctx, true)
	if err != nil {
		return nil, "", err
	}

	result, err := engine.Match(ctx, progress)
	if err != nil {
		return nil, "", err
	}

	path, werr := formatter.WriteNotFoundReport(result, reportPath)
	if werr != nil {
		r.logger.Warn("failed to write not-found report", "err", werr)
		path = ""
	}

	return result, path, nil
}

// runMatch executes the match stage and renders its summary. Shared by the
// CLI action and the TUI.
func (r *Runner) runMatch(ctx context.Context, progress chan<- tasks.ProgressUpdate, reportPath string) (string, error) {
	result, path, err := r.matchResult(ctx, progress, reportPath)
	if err != nil {
		return "", err
	}

	summary := string(formatter.MatchSummary(result))
	if path != "" {
		summary += fmt.Sprintf("\nReport written to %s\n", path)
	}

	return summary, nil
}

// Create builds a YouTube playlist from all matched songs.
func (r *Runner) Create(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		engine, err := r.syncEngine(ctx, true)
		if err != nil {
			return err
		}
		result, err := engine.Build(ctx, nil)
		if err != nil {
			return err
		}
		if err := r.writeJSON(result, cmd.Bool("pretty")); err != nil {
			return err
		}
		if cmd.Bool("clean") {
			return r.cleanStore(ctx)
		}
		return nil
	}

	r.writePlain("Creating playlist from matched songs...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.CreatePlaylist:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.AddVideos:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary, err := r.runBuild(ctx, progressCh)
	close(progressCh)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Playlist Created")
	r.writePlain("%s", summary)

	if cmd.Bool("clean") {
		if err := r.cleanStore(ctx); err != nil {
			return err
		}
		r.writePlain("✓ Stored data cleaned up\n")
	}

	return nil
}

// cleanStore wipes the stored pipeline state.
func (r *Runner) cleanStore(ctx context.Context) error {
	engine, err := r.syncEngine(ctx, false)
	if err != nil {
		return err
	}
	return engine.Reset(ctx)
}

// runBuild executes the build stage and renders its summary. Shared by the
// CLI action and the TUI.
func (r *Runner) runBuild(ctx context.Context, progress chan<- tasks.ProgressUpdate) (string, error) {
	engine, err := r.syncEngine(ctx, true)
	if err != nil {
		return "", err
	}

	result, err := engine.Build(ctx, progress)
	if err != nil {
		return "", err
	}

	return string(formatter.BuildSummary(result)), nil
}

// Reset deletes all stored songs and matches after confirmation.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		r.writePlain("This deletes all stored songs and matches. Continue? [y/N] ")

		line, _ := bufio.NewReader(r.input).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	if err := r.cleanStore(ctx); err != nil {
		return err
	}

	r.writePlain("✓ All stored data deleted\n")
	return nil
}
