package dashboard

import (
	"context"
	"fmt"

	"land-regen/shared/config"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusField int

const (
	focusLat focusField = iota
	focusLon
	focusFetch
	focusDetect
	focusCount
)

// BackendStatusMsg carries the outcome of a scheduled backend probe
type BackendStatusMsg struct {
	Err error
}

// Model is the root dashboard: coordinate panel on top, detection panel
// below, key help and backend reachability in the footer
type Model struct {
	coords CoordinatePanel
	detect DetectionPanel

	focus   focusField
	keys    keyMap
	help    help.Model
	baseURL string

	probed     bool
	backendErr error

	width int
}

func New(ctx context.Context, cfg *config.Config, backend Backend) Model {
	m := Model{
		coords:  NewCoordinatePanel(ctx, backend, &cfg.Dashboard),
		detect:  NewDetectionPanel(ctx, backend),
		keys:    defaultKeyMap(),
		help:    help.New(),
		baseURL: cfg.Backend.BaseURL,
	}
	m.coords.setFocus(focusLat)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Coordinates() CoordinatePanel { return m.coords }
func (m Model) Detection() DetectionPanel { return m.detect }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case BackendStatusMsg:
		m.probed = true
		m.backendErr = msg.Err
		return m, nil

	case ndviFetchedMsg:
		var cmd tea.Cmd
		m.coords, cmd = m.coords.Update(msg)
		return m, cmd

	case degradationDetectedMsg:
		var cmd tea.Cmd
		m.detect, cmd = m.detect.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var coordsCmd, detectCmd tea.Cmd
		m.coords, coordsCmd = m.coords.Update(msg)
		m.detect, detectCmd = m.detect.Update(msg)
		return m, tea.Batch(coordsCmd, detectCmd)
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	m.coords, cmd = m.coords.updateInput(m.focus, msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit) && !m.editing():
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Fetch):
		return m.fetch()
	case key.Matches(msg, m.keys.Detect):
		return m.runDetect()
	case key.Matches(msg, m.keys.Press):
		switch m.focus {
		case focusFetch:
			return m.fetch()
		case focusDetect:
			return m.runDetect()
		default:
			return m.moveFocus(1)
		}
	}

	var cmd tea.Cmd
	m.coords, cmd = m.coords.updateInput(m.focus, msg)
	return m, cmd
}

func (m Model) editing() bool {
	return m.focus == focusLat || m.focus == focusLon
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = focusField((int(m.focus) + delta + int(focusCount)) % int(focusCount))
	cmd := m.coords.setFocus(m.focus)
	return m, cmd
}

func (m Model) fetch() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.coords, cmd = m.coords.Fetch()
	return m, cmd
}

func (m Model) runDetect() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.detect, cmd = m.detect.Detect(m.coords.Latitude(), m.coords.Longitude(), m.coords.Data())
	return m, cmd
}

func (m Model) View() string {
	header := titleStyle.Render("Land ReGen NDVI Dashboard")

	coords := panelStyle.Render(m.coords.View(m.focus))
	detect := panelStyle.Render(m.detect.View(m.focus == focusDetect))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		coords,
		detect,
		m.backendStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) backendStatus() string {
	switch {
	case !m.probed:
		return dimStyle.Render(fmt.Sprintf("backend %s: checking...", m.baseURL))
	case m.backendErr != nil:
		return errorStyle.Render(fmt.Sprintf("backend %s: unreachable", m.baseURL))
	default:
		return upStyle.Render(fmt.Sprintf("backend %s: up", m.baseURL))
	}
}
