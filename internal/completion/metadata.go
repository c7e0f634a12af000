package completion

import "github.com/chmouel/slimstatus/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "DIR", "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// CommandInfo contains metadata about a subcommand for completion generation.
type CommandInfo struct {
	Name        string
	Description string
}

// GetCommands returns metadata for all slimstatus subcommands.
func GetCommands() []CommandInfo {
	return []CommandInfo{
		{Name: "status", Description: "Print only the budgeted git status report"},
		{Name: "watch", Description: "Live view that refreshes when the repository changes"},
		{Name: "completion", Description: "Generate shell completion scripts"},
	}
}

// GetFlags returns metadata for all slimstatus command-line flags.
// This is the single source of truth for shell completion generation.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "working-dir",
			Description: "Repository to inspect instead of the current directory",
			HasValue:    true,
			ValueHint:   "DIR",
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Description: "Override config values",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "plain",
			Description: "Print the context block without the system-reminder envelope",
			HasValue:    false,
		},
		{
			Name:        "theme",
			Description: "Override the UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "no-git",
			Description: "Skip the git context section",
			HasValue:    false,
		},
		{
			Name:        "version",
			Description: "Print version information",
			HasValue:    false,
		},
	}
}
