// Package tui implements the live status view: a single viewport
// holding the rendered context block, refreshed on git activity.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/slimstatus/internal/config"
	"github.com/chmouel/slimstatus/internal/git"
	"github.com/chmouel/slimstatus/internal/log"
	"github.com/chmouel/slimstatus/internal/models"
	"github.com/chmouel/slimstatus/internal/theme"
	"github.com/chmouel/slimstatus/internal/watch"
)

// chromeHeight is the number of rows taken by header and footer.
const chromeHeight = 2

type snapshotMsg struct {
	snapshot models.RepoContext
	isRepo   bool
	at       time.Time
}

type gitDirChangedMsg struct{}

type refreshTickMsg struct{}

type errMsg struct {
	err error
}

// Model is the bubbletea model for the watch view.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme
	git    *git.Service
	watch  *watch.Service
	ctx    context.Context

	viewport viewport.Model
	ready    bool

	windowWidth  int
	windowHeight int

	snapshot    models.RepoContext
	isRepo      bool
	content     string
	refreshedAt time.Time
	refreshing  bool
	quitting    bool
	statusLine  string
}

// NewModel builds the watch model for the given configuration and git
// service.
func NewModel(cfg *config.AppConfig, gitSvc *git.Service) *Model {
	return &Model{
		config: cfg,
		theme:  theme.GetTheme(cfg.Theme),
		git:    gitSvc,
		watch:  watch.NewService(gitSvc, log.Printf),
		ctx:    context.Background(),
	}
}

// Init starts the initial snapshot, the git watcher and the periodic
// refresh tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.startWatcher(), m.refreshTick())
}

// Close releases background resources. Safe to call more than once.
func (m *Model) Close() {
	if m.watch != nil && m.watch.Started {
		m.watch.Stop()
	}
}

// Update handles bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Close()
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case snapshotMsg:
		m.refreshing = false
		m.snapshot = msg.snapshot
		m.isRepo = msg.isRepo
		m.refreshedAt = msg.at
		m.statusLine = ""
		m.content = m.buildContent()
		m.setViewportContent()
		return m, nil

	case gitDirChangedMsg:
		m.watch.ResetWaiting()
		cmds := []tea.Cmd{m.waitForWatchEvent()}
		if m.watch.ShouldRefresh(time.Now()) {
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)

	case refreshTickMsg:
		return m, tea.Batch(m.refresh(), m.refreshTick())

	case errMsg:
		m.statusLine = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height

	contentHeight := max(height-chromeHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
		m.content = m.buildContent()
	} else {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	}
	m.setViewportContent()
}

// refresh gathers a fresh snapshot off the update loop.
func (m *Model) refresh() tea.Cmd {
	m.refreshing = true
	return func() tea.Msg {
		isRepo := m.git.IsRepo(m.ctx)
		snap := m.git.Snapshot(m.ctx, m.config)
		return snapshotMsg{snapshot: snap, isRepo: isRepo, at: time.Now()}
	}
}

func (m *Model) startWatcher() tea.Cmd {
	if m.watch == nil || m.watch.Started {
		return nil
	}
	started, err := m.watch.Start(m.ctx)
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: err}
		}
	}
	if !started {
		return nil
	}
	return m.waitForWatchEvent()
}

func (m *Model) waitForWatchEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return gitDirChangedMsg{}
	}
}

func (m *Model) refreshInterval() time.Duration {
	if m.config == nil || m.config.RefreshInterval <= 0 {
		return 0
	}
	return time.Duration(m.config.RefreshInterval) * time.Second
}

func (m *Model) refreshTick() tea.Cmd {
	interval := m.refreshInterval()
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}
