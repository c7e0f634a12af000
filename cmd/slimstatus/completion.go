package main

import (
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/slimstatus/internal/completion"
)

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action:    handleCompletion,
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: slimstatus completion <bash|zsh>")
	}

	shell := c.Args().First()
	switch shell {
	case "bash":
		_, _ = os.Stdout.WriteString(completion.BashScript(c.App.Name))
	case "zsh":
		_, _ = os.Stdout.WriteString(completion.ZshScript(c.App.Name))
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
	return nil
}
