package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"spotisync/internal/formatter"
	"spotisync/internal/scraper"
	"spotisync/internal/shared"
)

// Scrape extracts songs from a Spotify playlist or album URL into the store.
func (r *Runner) Scrape(ctx context.Context, cmd *cli.Command) error {
	summary, err := r.runScrape(ctx, cmd.StringArg("url"))
	if err != nil {
		return err
	}

	r.writePlainHeader("Scrape Complete")
	r.writePlain("%s", summary)
	return nil
}

// runScrape validates the URL, runs a browser session over it, and returns a
// plain text summary. Shared by the CLI action and the TUI.
func (r *Runner) runScrape(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("%w: playlist or album URL is required", shared.ErrMissingArgument)
	}
	if !strings.Contains(url, "open.spotify.com/") {
		return "", fmt.Errorf("%w: expected an open.spotify.com playlist or album URL, got %q", shared.ErrInvalidArgument, url)
	}

	r.logger.Info("starting scrape", "url", url)

	spider := scraper.New(r.store, r.config.Scraper, r.logger)
	report, err := spider.Run(ctx, url)
	if err != nil {
		return "", err
	}

	return string(formatter.ScrapeSummary(report)), nil
}
