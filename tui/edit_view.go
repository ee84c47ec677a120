// ABOUTME: Next-action editor for the selected account
// ABOUTME: Single text input; saving runs as a guarded write
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/rolo/db"
)

func (m Model) renderEditActionView() string {
	account := m.sess.SelectedAccount()
	if account == nil {
		return m.renderListView()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("NEXT ACTION — " + account.Name))
	s.WriteString("\n\n")
	s.WriteString(m.actionInput.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: save • esc: cancel"))
	return s.String()
}

func (m Model) openEditAction() (tea.Model, tea.Cmd) {
	account := m.sess.SelectedAccount()
	if account == nil {
		return m, nil
	}

	input := textinput.New()
	input.Placeholder = "Next action"
	input.CharLimit = 200
	input.SetValue(account.NextAction)
	input.Focus()

	m.actionInput = input
	m.viewMode = ViewEditAction
	return m, textinput.Blink
}

func (m Model) handleEditActionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewDetail
		return m, nil
	case "enter":
		account := m.sess.SelectedAccount()
		if account == nil {
			m.viewMode = ViewList
			return m, nil
		}

		updated := *account
		updated.NextAction = strings.TrimSpace(m.actionInput.Value())

		m.viewMode = ViewDetail
		return m.guardedWrite(func() error {
			return db.UpdateAccount(m.db, account.ID, &updated)
		})
	}

	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	return m, cmd
}
