// Package main provides CLI flag definitions for slimstatus.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/slimstatus/internal/completion"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "working-dir",
			Aliases: []string{"w"},
			Usage:   "Repository to inspect instead of the current directory",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=ss.key=value",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "plain",
			Usage: "Print the context block without the system-reminder envelope",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.BoolFlag{
			Name:  "no-git",
			Usage: "Skip the git context section",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
func completeGlobalFlags(c *urfavecli.Context) {
	// Complete subcommands and flags if no args yet
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
		for _, flag := range completion.GetFlags() {
			fmt.Println("--" + flag.Name)
		}
	}
}
