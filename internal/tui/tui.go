package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunDashboard opens the live timer dashboard
func RunDashboard() error {
	model := NewDashboardModel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Report what happened after the TUI closes
	if m, ok := finalModel.(DashboardModel); ok {
		if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		} else if len(m.stoppedOnExit) > 0 {
			for _, line := range m.stoppedOnExit {
				fmt.Printf("⏹️  %s\n", line)
			}
		}
	}

	return nil
}
