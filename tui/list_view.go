// ABOUTME: Account list view with selection mode for bulk actions
// ABOUTME: Space toggles membership; d and e run bulk delete/export on the subset
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/rolo/bulk"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Accounts"))
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	}
	if m.statusMessage != "" {
		s.WriteString(statusStyle.Render(m.statusMessage))
		s.WriteString("\n")
	}
	if notice := m.sess.ActiveNotice(); notice != nil {
		s.WriteString(noticeStyle.Render(notice.Message))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if len(m.accounts) == 0 {
		s.WriteString(dimStyle.Render("No accounts yet. Import some with `rolo import`."))
		s.WriteString("\n")
	}

	for i, account := range m.accounts {
		var row strings.Builder

		if m.executor.SelectionMode() {
			if m.executor.Selected(account.ID) {
				row.WriteString("[x] ")
			} else {
				row.WriteString("[ ] ")
			}
		}

		row.WriteString(fmt.Sprintf("%-30s %-10s %-8s %s", truncate(account.Name, 30), account.Kind, account.Priority, account.Status))

		if i == m.cursor {
			s.WriteString(selectedRowStyle.Render("▶ " + row.String()))
		} else {
			s.WriteString("  " + row.String())
		}
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderListHelp() string {
	help := []string{"↑/↓: navigate", "enter: open"}
	if m.executor.SelectionMode() {
		help = append(help, "space: toggle", fmt.Sprintf("d: delete (%d)", m.executor.SelectionCount()), "e: export", "esc: cancel")
	} else {
		help = append(help, "v: select", "r: refresh", "q: quit")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.accounts) {
			m.sess.SelectAccount(&m.accounts[m.cursor])
			m.contactCursor = 0
			m.statusMessage = ""
			m.viewMode = ViewDetail
		}
	case "v":
		m.executor.EnterSelectionMode()
	case " ":
		if m.executor.SelectionMode() && m.cursor < len(m.accounts) {
			m.executor.Toggle(m.accounts[m.cursor].ID)
		}
	case "d":
		if m.executor.SelectionMode() && m.executor.SelectionCount() > 0 {
			m.viewMode = ViewConfirmDelete
		}
	case "e":
		if m.executor.SelectionMode() && m.executor.SelectionCount() > 0 {
			return m.exportSelection()
		}
	case "esc":
		if m.executor.SelectionMode() {
			m.executor.ExitSelectionMode()
		}
	case "r":
		return m, m.loadSnapshot()
	}

	return m, nil
}

func (m Model) exportSelection() (tea.Model, tea.Cmd) {
	content := m.executor.ExportSelected(m.accounts)
	filename := bulk.ExportFilename("accounts", time.Now())
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		m.statusMessage = "Export failed: " + err.Error()
		return m, nil
	}
	m.statusMessage = "Exported to " + filename
	return m, nil
}

// truncate shortens s to at most max display runes, ending with an ellipsis.
// Counting runes keeps multi-byte names intact at the cut point.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
