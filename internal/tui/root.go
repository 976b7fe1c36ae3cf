package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scriptorium/scriptorium/internal/client"
	"github.com/scriptorium/scriptorium/internal/config"
	"github.com/scriptorium/scriptorium/internal/model"
	"github.com/scriptorium/scriptorium/internal/scene"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeDashboard ViewMode = iota
	ViewModeSubmit
	ViewModeHelp
)

// Messages
type frameTickMsg time.Time

type pollTickMsg time.Time

type snapshotMsg struct {
	snap *model.Snapshot
}

type fetchFailedMsg struct {
	err error
}

type submissionDoneMsg struct {
	receipt *model.SubmissionReceipt
	err     error
}

// frameInterval drives the ambient scene rotation; it is independent of
// the poll cadence.
const frameInterval = 100 * time.Millisecond

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// View state
	viewMode ViewMode

	// Configuration and backend
	cfg     *config.Config
	backend *client.Client

	// Scene state. The registry is only mutated here in Update, so a
	// render frame always observes a fully reconciled object set.
	registry *scene.Registry
	camera   scene.Camera

	// Last known good data
	snapshot    *model.Snapshot
	lastUpdated time.Time
	fetchErr    string
	fetching    bool

	// Submission form
	form      submitForm
	statusMsg string

	// Key bindings
	keys KeyMap

	// Ready state
	ready bool
}

// NewRootModel creates the dashboard model.
func NewRootModel(cfg *config.Config, backend *client.Client) Model {
	return Model{
		viewMode: ViewModeDashboard,
		cfg:      cfg,
		backend:  backend,
		registry: scene.NewRegistry(),
		form:     newSubmitForm(),
		keys:     DefaultKeyMap(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameTickCmd(),
		m.pollTickCmd(),
		m.fetchSnapshotCmd(), // first snapshot without waiting a full tick
	)
}

func frameTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m Model) pollTickCmd() tea.Cmd {
	return tea.Tick(m.cfg.PollInterval(), func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// fetchSnapshotCmd fetches the status snapshot off the update loop. The
// client's freshness window decides whether a real request happens.
func (m Model) fetchSnapshotCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		snap, err := backend.FetchStatus(context.Background())
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

// refreshNowCmd pre-empts the freshness window and fetches immediately.
func (m Model) refreshNowCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		backend.Invalidate()
		snap, err := backend.FetchStatus(context.Background())
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m Model) submitCmd(sub model.Submission) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		receipt, err := backend.SubmitManuscript(context.Background(), sub)
		return submissionDoneMsg{receipt: receipt, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case frameTickMsg:
		m.camera.Advance()
		cmds = append(cmds, frameTickCmd())

	case pollTickMsg:
		m.fetching = true
		cmds = append(cmds, m.pollTickCmd(), m.fetchSnapshotCmd())

	case snapshotMsg:
		// Reconciliation runs synchronously within this update turn, so
		// it is atomic with respect to render frames.
		m.snapshot = msg.snap
		m.registry.Reconcile(msg.snap.ActiveManuscripts)
		m.lastUpdated = time.Now()
		m.fetchErr = ""
		m.fetching = false

	case fetchFailedMsg:
		// Keep the last known good snapshot on screen; the next poll
		// tick retries naturally.
		m.fetchErr = msg.err.Error()
		m.fetching = false

	case submissionDoneMsg:
		if msg.err != nil {
			m.statusMsg = ErrorStyle.Render(msg.err.Error())
			break
		}
		m.statusMsg = SuccessStyle.Render("submitted as " + msg.receipt.ManuscriptID)
		m.viewMode = ViewModeDashboard
		m.form = newSubmitForm()
		cmds = append(cmds, m.refreshNowCmd())

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewModeSubmit:
		return m.handleSubmitKey(msg)

	case ViewModeHelp:
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.viewMode = ViewModeDashboard
		}
		return m, nil

	default:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.fetching = true
			m.statusMsg = ""
			return m, m.refreshNowCmd()
		case key.Matches(msg, m.keys.Submit):
			m.viewMode = ViewModeSubmit
			m.form = newSubmitForm()
			m.statusMsg = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.viewMode = ViewModeHelp
			return m, nil
		}
		return m, nil
	}
}

func (m Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.viewMode = ViewModeDashboard
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.focusPrev()
		return m, nil
	case key.Matches(msg, m.keys.Toggle) && !m.form.onTextField():
		m.form.toggleAIGC()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if !m.form.valid() {
			m.statusMsg = ErrorStyle.Render("title and content are required")
			return m, nil
		}
		return m, m.submitCmd(m.form.submission())
	}

	// Everything else types into the focused input.
	if m.form.onTextField() {
		var cmd tea.Cmd
		m.form.inputs[m.form.focusIdx], cmd = m.form.inputs[m.form.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := HeaderStyle.Render("scriptorium") +
		DimStyle.Render("  · editorial pipeline · "+m.cfg.BackendURL)

	bodyHeight := m.height - 3 // header + status bar
	var body string
	switch m.viewMode {
	case ViewModeSubmit:
		body = m.form.view(m.width)
	case ViewModeHelp:
		body = m.helpView()
	default:
		body = m.dashboardView(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar())
}

const tablesWidth = 52

func (m Model) dashboardView(bodyHeight int) string {
	sceneWidth := m.width - tablesWidth - 2
	if sceneWidth < 30 || bodyHeight < 12 {
		return DimStyle.Render("terminal too small")
	}

	frame := scene.RenderFrame(m.registry.Objects(), m.camera, sceneWidth-4, bodyHeight-2)
	scenePanel := ScenePanelStyle.
		Width(sceneWidth - 2).
		Height(bodyHeight - 2).
		Render(frame)

	var tablesPanel string
	if m.snapshot == nil {
		tablesPanel = TablePanelStyle.Render(DimStyle.Render("waiting for first snapshot..."))
	} else {
		tablesPanel = TablePanelStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			PanelTitleStyle.Render("Stages"),
			stageCountsTable(m.snapshot),
			PanelTitleStyle.Render("Manuscripts"),
			manuscriptsTable(m.snapshot),
			PanelTitleStyle.Render("Agents"),
			agentsTable(m.snapshot),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, scenePanel, tablesPanel)
}

func (m Model) helpView() string {
	var lines string
	lines += HelpTitleStyle.Render("Keys") + "\n\n"
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			lines += fmt.Sprintf("%s  %s\n",
				HelpKeyStyle.Render(fmt.Sprintf("%-10s", binding.Help().Key)),
				HelpDescStyle.Render(binding.Help().Desc))
		}
		lines += "\n"
	}
	return HelpStyle.Render(lines)
}

func (m Model) statusBar() string {
	var status string
	switch {
	case m.fetchErr != "":
		status = ErrorStyle.Render("offline: "+m.fetchErr) +
			DimStyle.Render(" (showing last known state)")
	case m.fetching:
		status = StatusStaleStyle.Render("fetching...")
	case m.lastUpdated.IsZero():
		status = DimStyle.Render("no data yet")
	default:
		status = StatusFreshStyle.Render(fmt.Sprintf("updated %s ago", time.Since(m.lastUpdated).Round(time.Second)))
	}

	if m.statusMsg != "" {
		status += "  " + m.statusMsg
	}

	help := DimStyle.Render("r refresh · n new · ? help · q quit")
	return StatusBarStyle.Render(status + "  " + help)
}
