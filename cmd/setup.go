package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"spotisync/internal/shared"
)

// Setup writes a starter config file and checks store reachability.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writePlain("Config file already exists at %s\n", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.writePlain("✓ Config file created at %s\n", configPath)
	}

	if r.store.Available() {
		r.writePlain("✓ Graph store reachable at %s\n", r.config.Graph.Addr())
	} else {
		r.writePlain("✗ Graph store not reachable at %s, start FalkorDB before scraping\n", r.config.Graph.Addr())
	}

	r.writePlain("\nNext steps:\n")
	r.writePlain("1. Put your Google OAuth client secrets at %s\n", r.config.YouTube.ClientSecretsPath)
	r.writePlain("2. Run 'spotisync auth' to authorize the YouTube account\n")
	r.writePlain("3. Run 'spotisync scrape <url>' or 'spotisync menu'\n")
	return nil
}
