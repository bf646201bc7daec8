package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/models"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

// DashboardModel is the TUI model for the live timer dashboard. The refresh
// tick only reads; rows change exclusively through user stop commands.
type DashboardModel struct {
	width  int
	height int

	sessions []models.Session
	cursor   int
	now      time.Time

	spinner spinner.Model

	// confirming is set while the close-with-running-timers prompt is up
	confirming bool

	stoppedOnExit []string
	err           error
}

// refreshTickMsg is sent every second to re-read active sessions
type refreshTickMsg struct{}

// sessionsMsg carries a fresh snapshot of active sessions
type sessionsMsg struct {
	sessions []models.Session
	err      error
}

// stoppedMsg reports the result of a stop command
type stoppedMsg struct {
	lines []string
	quit  bool
	err   error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel() DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return DashboardModel{
		now:     time.Now(),
		spinner: sp,
	}
}

// Init starts the refresh tick and loads the first snapshot
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		loadSessions,
		m.spinner.Tick,
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return refreshTickMsg{}
		}),
	)
}

// loadSessions re-reads the active set from the store. Never cached beyond
// one tick, so the display cannot drift from persisted truth.
func loadSessions() tea.Msg {
	sessions, err := db.GetActiveSessions()
	return sessionsMsg{sessions: sessions, err: err}
}

// stopSession stops one session by id
func stopSession(id uint, quit bool) tea.Cmd {
	return func() tea.Msg {
		session, err := db.StopSession(id)
		if err != nil {
			return stoppedMsg{err: err, quit: quit}
		}
		line := fmt.Sprintf("Stopped %s (%s)", session.TaskDisplayName(), session.ElapsedDisplay(time.Now()))
		return stoppedMsg{lines: []string{line}, quit: quit}
	}
}

// stopAll stops every running timer except the Work Day container
func stopAll(quit bool) tea.Cmd {
	return func() tea.Msg {
		stopped, err := db.StopAllSessions(true)
		if err != nil {
			return stoppedMsg{err: err, quit: quit}
		}
		now := time.Now()
		lines := make([]string, 0, len(stopped))
		for _, s := range stopped {
			lines = append(lines, fmt.Sprintf("Stopped %s (%s)", s.TaskDisplayName(), s.ElapsedDisplay(now)))
		}
		return stoppedMsg{lines: lines, quit: quit}
	}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		m.now = time.Now()
		return m, tea.Batch(
			loadSessions,
			tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return refreshTickMsg{}
			}),
		)

	case sessionsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.sessions = msg.sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = len(m.sessions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case stoppedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.quit {
			m.stoppedOnExit = append(m.stoppedOnExit, msg.lines...)
			return m, tea.Quit
		}
		return m, loadSessions

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
			return m, nil
		case "s":
			if len(m.sessions) > 0 {
				return m, stopSession(m.sessions[m.cursor].ID, false)
			}
			return m, nil
		case "S":
			return m, stopAll(false)
		case "q", "esc":
			if m.hasRunningTaskTimers() {
				m.confirming = true
				return m, nil
			}
			return m, tea.Quit
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateConfirm handles the close-with-running-timers prompt: stop and
// close, close without stopping, or cancel.
func (m DashboardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "S":
		m.confirming = false
		return m, stopAll(true)
	case "q":
		return m, tea.Quit
	case "esc", "c":
		m.confirming = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// hasRunningTaskTimers reports whether any non-Work-Day timer is running
func (m DashboardModel) hasRunningTaskTimers() bool {
	for _, s := range m.sessions {
		if s.TaskDisplayName() != models.WorkDayTaskName {
			return true
		}
	}
	return false
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	title := fmt.Sprintf("%s ctt — %d active timer(s)", m.spinner.View(), len(m.sessions))

	panel := m.renderSessionsPanel()
	help := m.renderHelpBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		"",
		panel,
		"",
		help,
	)
}

// renderSessionsPanel renders one row per active timer
func (m DashboardModel) renderSessionsPanel() string {
	if len(m.sessions) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render("No timers running. Start one with 'ctt start <task-id>'.")
	}

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var rows []string
	for i, s := range m.sessions {
		name := s.TaskDisplayName()
		dot := lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.TaskDisplayColor())).
			Render("●")

		elapsed := s.ElapsedDisplay(m.now)
		meta := metaStyle.Render(fmt.Sprintf("started %s", s.StartedAt.Local().Format("15:04:05")))

		line := fmt.Sprintf("%s %-30s %s  %s", dot, truncate(name, 30), elapsed, meta)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = rowStyle.Render("  " + line)
		}
		rows = append(rows, line)
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	return border.Render(strings.Join(rows, "\n"))
}

// renderHelpBar renders key hints, or the close prompt when confirming
func (m DashboardModel) renderHelpBar() string {
	if m.confirming {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render("Timers still running — [s] stop all & close  [q] close without stopping  [esc] cancel")
	}

	total := 0
	for _, s := range m.sessions {
		if secs, err := s.ElapsedSeconds(m.now); err == nil {
			total += secs
		}
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	return helpStyle.Render(fmt.Sprintf(
		"total %s  ·  ↑/↓ select  s stop  S stop all  q close",
		timeutil.FormatDuration(total)))
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
