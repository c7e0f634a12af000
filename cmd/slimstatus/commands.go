// Package main provides the slimstatus subcommands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/slimstatus/internal/git"
	"github.com/chmouel/slimstatus/internal/log"
	"github.com/chmouel/slimstatus/internal/status"
	"github.com/chmouel/slimstatus/internal/theme"
	"github.com/chmouel/slimstatus/internal/tui"
)

// backgroundProbeTimeout bounds the OSC terminal background query.
const backgroundProbeTimeout = 500 * time.Millisecond

func statusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "status",
		Usage: "Print only the budgeted git status report",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "stdin",
				Usage: "Read porcelain status text from stdin instead of running git",
			},
		},
		Action: runStatus,
	}
}

// runStatus emits the budgeted report on its own, either from the
// repository or, with --stdin, as a pure text filter.
func runStatus(c *urfavecli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		_ = log.Close()
		return err
	}

	var raw string
	if c.Bool("stdin") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			_ = log.Close()
			return fmt.Errorf("reading stdin: %w", err)
		}
		raw = string(data)
	} else {
		service := git.NewService(cfg.WorkingDir, cfg.GitTimeout(), nil)
		raw = service.RawStatus(context.Background())
	}

	fmt.Println(status.BuildReport(raw, cfg.StatusPolicy()))

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

func watchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "watch",
		Usage:  "Live view that refreshes when the repository changes",
		Action: runWatch,
	}
}

// runWatch launches the TUI.
func runWatch(c *urfavecli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		_ = log.Close()
		return err
	}

	// No configured theme: ask the terminal for its background color.
	if cfg.Theme == "" {
		detected, err := theme.DetectBackground(backgroundProbeTimeout)
		if err == nil {
			cfg.Theme = detected
		} else {
			cfg.Theme = theme.DefaultDark()
		}
	}

	service := git.NewService(cfg.WorkingDir, cfg.GitTimeout(), nil)
	model := tui.NewModel(cfg, service)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}
