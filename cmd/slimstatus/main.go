// Package main is the entry point for the slimstatus application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/slimstatus/internal/buildinfo"
	"github.com/chmouel/slimstatus/internal/config"
	"github.com/chmouel/slimstatus/internal/envinfo"
	"github.com/chmouel/slimstatus/internal/git"
	"github.com/chmouel/slimstatus/internal/log"
	"github.com/chmouel/slimstatus/internal/prompt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	cliApp := &urfavecli.App{
		Name:                 "slimstatus",
		Usage:                "Emit a compact environment and git status block for LLM prompts",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			statusCommand(),
			watchCommand(),
			completionCommand(),
		},

		Action: runEmit,

		BashComplete: completeGlobalFlags,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runEmit is the default action: gather everything once and print the
// context block to stdout.
func runEmit(c *urfavecli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		_ = log.Close()
		return err
	}

	ctx := context.Background()
	service := git.NewService(cfg.WorkingDir, cfg.GitTimeout(), nil)

	// The env block reports repository membership even when the git
	// section itself is disabled.
	isRepo := service.IsRepo(ctx)
	snap := service.Snapshot(ctx, cfg)

	env := envinfo.Gather(cfg, isRepo, time.Now())
	fmt.Println(prompt.Build(env.Format(), prompt.GitSection(snap), c.Bool("plain")))

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

// loadAppConfig performs the shared startup sequence: debug logging
// first so config loading can already be traced, then configuration
// with the command line flags layered on top.
func loadAppConfig(c *urfavecli.Context) (*config.AppConfig, error) {
	debugLog := c.String("debug-log")
	if debugLog != "" {
		debugLog = expandPath(debugLog)
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}

	workingDir := c.String("working-dir")
	if workingDir != "" {
		workingDir = expandPath(workingDir)
	}

	cfg, err := config.Load(c.String("config-file"), workingDir, c.StringSlice("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return nil, err
	}

	// If the debug log wasn't set via flag, check the config.
	if debugLog == "" {
		if cfg.DebugLog != "" {
			path := expandPath(cfg.DebugLog)
			if err := log.SetFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", path, err)
			}
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	} else {
		cfg.DebugLog = debugLog
	}

	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil, err
	}

	if c.Bool("no-git") {
		cfg.IncludeGit = false
	}

	return cfg, nil
}

// applyThemeConfig applies theme configuration from the command line.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	return nil
}

// expandPath expands a leading tilde and environment variables.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}
