// Package prompt assembles the context block injected ahead of a
// conversation.
package prompt

import (
	"strings"

	"github.com/chmouel/slimstatus/internal/models"
)

// Source names this tool in the system-reminder envelope.
const Source = "slimstatus"

const behavioralNote = "\n\nThis context is for your reference only. DO NOT mention this status information to the user unless directly relevant to their question. Process silently and continue your work."

const gitHeader = "gitStatus: This is the git status at the start of the conversation. Note that this status is a snapshot in time, and will not update during the conversation."

// GitSection renders the repository part of the report. It returns ""
// when nothing beyond the fixed header would be shown, so an empty
// snapshot drops the section entirely.
func GitSection(snap models.RepoContext) string {
	parts := []string{gitHeader}

	if snap.Branch != "" {
		parts = append(parts, "Current branch: "+snap.Branch)
	}
	if snap.MainBranch != "" {
		parts = append(parts, "\nMain branch (you will usually use this for PRs): "+snap.MainBranch)
	}
	if snap.Status != "" {
		parts = append(parts, "\nStatus:\n"+snap.Status)
	}
	if snap.RecentCommits != "" {
		parts = append(parts, "\nRecent commits:\n"+snap.RecentCommits)
	}

	if len(parts) == 1 {
		return ""
	}
	return strings.Join(parts, "\n")
}

// Build assembles the full injection from the environment block and
// the git section, skipping empty sections. With plain set, the
// system-reminder envelope and the trailing behavioral note are
// omitted.
func Build(envBlock, gitSection string, plain bool) string {
	var parts []string
	if envBlock != "" {
		parts = append(parts, envBlock)
	}
	if gitSection != "" {
		parts = append(parts, gitSection)
	}
	content := strings.Join(parts, "\n\n")

	if plain {
		return content
	}
	return `<system-reminder source="` + Source + `">` + "\n" + content + behavioralNote + "\n</system-reminder>"
}
