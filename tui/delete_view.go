// ABOUTME: Bulk delete confirmation dialog
// ABOUTME: y runs the sequential delete off the update loop; n/esc backs out
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolo/bulk"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

func (m Model) renderConfirmDeleteView() string {
	count := m.executor.SelectionCount()
	body := warningStyle.Render(fmt.Sprintf("Delete %d account(s)?", count)) + "\n\n" +
		"Contacts, tasks, meetings and notes under them\n" +
		"will be removed as well. This cannot be undone.\n\n" +
		helpStyle.Render("y: delete • n/esc: cancel")
	return confirmBoxStyle.Render(body)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, m.deleteSelectedCmd()
	case "n", "N", "esc":
		m.viewMode = ViewList
	}
	return m, nil
}

// deleteSelectedCmd runs the bulk delete in a command so the paced
// sequential writes do not freeze the event loop.
func (m Model) deleteSelectedCmd() tea.Cmd {
	executor := m.executor
	return func() tea.Msg {
		return deleteDoneMsg{report: executor.DeleteSelected()}
	}
}

func deleteSummary(report bulk.DeleteReport) string {
	if report.Deleted == report.Attempted {
		return fmt.Sprintf("Deleted %d account(s)", report.Deleted)
	}
	return fmt.Sprintf("Deleted %d of %d account(s)", report.Deleted, report.Attempted)
}
