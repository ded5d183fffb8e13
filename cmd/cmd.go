// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// scrapeCommand extracts songs from a Spotify page into the store.
func scrapeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Scrape a Spotify playlist or album URL",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Action: r.Scrape,
	}
}

// matchCommand searches YouTube for every pending song.
func matchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Match pending songs against YouTube",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "report",
				Usage: "Path for the not-found report file",
				Value: "not_found.txt",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the match result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent JSON output",
			},
		},
		Action: r.Match,
	}
}

// createCommand builds a YouTube playlist from matched songs.
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "create",
		Aliases: []string{"build"},
		Usage:   "Create a YouTube playlist from matched songs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "Delete all stored data after a successful build",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the build result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent JSON output",
			},
		},
		Action: r.Create,
	}
}

// resetCommand wipes all stored pipeline state.
func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete all stored songs and matches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Reset,
	}
}

// authCommand runs the YouTube OAuth flow.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with YouTube using OAuth2",
		Action: r.Auth,
	}
}

// setupCommand writes a starter config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and check connectivity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level interactive menu command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"tui", "interactive"},
		Usage:   "Launch the interactive menu",
		Action:  r.TUI,
	}
}
