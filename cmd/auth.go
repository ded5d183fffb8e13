package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Auth runs the YouTube OAuth flow and persists the token for later stages.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	r.writePlain("Starting YouTube authentication...\n")

	if _, err := r.videoService(ctx); err != nil {
		return err
	}

	r.writePlain("✓ YouTube authentication successful\n")
	r.writePlain("Token saved to: %s\n", r.config.YouTube.TokenPath)
	return nil
}
