package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/slimstatus/internal/envinfo"
	"github.com/chmouel/slimstatus/internal/prompt"
	"github.com/chmouel/slimstatus/internal/status"
)

// View renders the full screen: header, viewport, footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.Accent).
		Foreground(m.theme.AccentFg).
		Bold(true).
		Width(m.windowWidth).
		Padding(0, 1)

	title := "slimstatus"
	if m.snapshot.Branch != "" {
		title = fmt.Sprintf("%s  %s", title, m.snapshot.Branch)
	}
	if m.refreshing {
		title += "  (refreshing)"
	}
	return headerStyle.Render(title)
}

func (m *Model) renderFooter() string {
	footerStyle := lipgloss.NewStyle().
		Width(m.windowWidth).
		Padding(0, 1)

	hints := []string{
		m.renderKeyHint("r", "Refresh"),
		m.renderKeyHint("g/G", "Top/Bottom"),
		m.renderKeyHint("q", "Quit"),
	}
	line := strings.Join(hints, "  ")

	switch {
	case m.statusLine != "":
		errStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorFg)
		line += "  " + errStyle.Render(m.statusLine)
	case !m.refreshedAt.IsZero():
		ageStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
		line += "  " + ageStyle.Render("refreshed "+m.refreshedAt.Format("15:04:05"))
	}
	return footerStyle.Render(line)
}

func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// buildContent renders the context block for the current snapshot, the
// same text the status command emits, with colors and icons layered on.
func (m *Model) buildContent() string {
	if m.refreshedAt.IsZero() {
		return "Gathering repository status..."
	}
	env := envinfo.Gather(m.config, m.isRepo, m.refreshedAt)
	content := prompt.Build(env.Format(), prompt.GitSection(m.snapshot), true)
	return m.decorate(content)
}

func (m *Model) setViewportContent() {
	if !m.ready {
		return
	}
	width := max(m.viewport.Width, 1)
	m.viewport.SetContent(wrap.String(m.content, width))
}

// decorate colors accounting and warning lines and prefixes change
// records with a file icon when icons are enabled.
func (m *Model) decorate(content string) string {
	muted := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	warn := lipgloss.NewStyle().Foreground(m.theme.WarnFg)
	clean := lipgloss.NewStyle().Foreground(m.theme.SuccessFg)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "[WARNING:"), strings.HasPrefix(line, "[Suggestion:"):
			lines[i] = warn.Render(line)
		case strings.Contains(line, "files omitted"), strings.HasPrefix(line, "[Filtered:"), strings.HasPrefix(line, "[Hard limit"):
			lines[i] = muted.Render(line)
		case line == status.CleanMessage:
			lines[i] = clean.Render(line)
		case isRecordLine(line):
			if m.config.ShowIcons {
				lines[i] = line[:3] + iconWithSpace(deviconForName(recordBase(line[3:]), false)) + line[3:]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// isRecordLine reports whether a line looks like a porcelain change
// record: a two letter code, a space, then a path.
func isRecordLine(line string) bool {
	if len(line) < 4 || line[2] != ' ' {
		return false
	}
	code := line[:2]
	if code == "  " {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(" MTADRCU?!", r) {
			return false
		}
	}
	return true
}

// recordBase extracts the file name to pick an icon for. Renames show
// as "old -> new" and the new side wins.
func recordBase(path string) string {
	if _, after, ok := strings.Cut(path, " -> "); ok {
		path = after
	}
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}
