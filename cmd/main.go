package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"spotisync/internal/graph"
	"spotisync/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loaded, err := shared.LoadConfig("config.toml"); err == nil {
			config = loaded
		}
	}

	var conn graph.Conn
	if c, err := graph.Dial(config.Graph.Addr(), config.Graph.Name); err != nil {
		logger.Warn("graph store unreachable, continuing without persistence",
			"addr", config.Graph.Addr(), "err", err)
	} else {
		conn = c
		defer c.Close()
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  graph.NewStore(conn, logger),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "spotisync",
		Usage:    "Sync Spotify playlists to YouTube",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", "err", err)
		if errors.Is(err, shared.ErrMissingArgument) || errors.Is(err, shared.ErrInvalidArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
