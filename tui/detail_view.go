// ABOUTME: Account detail view showing the reconciled selection
// ABOUTME: Single-entity writes here run under the mutation guard
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

func (m Model) renderDetailView() string {
	account := m.sess.SelectedAccount()
	if account == nil {
		return m.renderListView()
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(account.Name))
	s.WriteString("\n")

	if notice := m.sess.ActiveNotice(); notice != nil {
		s.WriteString(noticeStyle.Render(notice.Message))
		s.WriteString("\n")
	}
	if m.statusMessage != "" {
		s.WriteString(errorStyle.Render(m.statusMessage))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	s.WriteString(fmt.Sprintf("Kind:     %s\n", account.Kind))
	s.WriteString(fmt.Sprintf("Status:   %s\n", account.Status))
	s.WriteString(fmt.Sprintf("Priority: %s\n", account.Priority))
	if account.AssigneeName != "" {
		s.WriteString(fmt.Sprintf("Assigned: %s\n", account.AssigneeName))
	}
	if account.NextAction != "" {
		next := account.NextAction
		if account.NextActionDate != nil {
			next += " — " + account.NextActionDate.Format("2006-01-02")
			if account.NextActionTime != "" {
				next += " " + account.NextActionTime
			}
		}
		s.WriteString(fmt.Sprintf("Next:     %s\n", next))
	}

	switch account.Kind {
	case models.KindInvestor:
		s.WriteString(fmt.Sprintf("Check:    $%d (%s)\n", account.Investor.CheckSize/100, account.Investor.Stage))
	case models.KindCustomer:
		s.WriteString(fmt.Sprintf("Deal:     $%d (%s)\n", account.Customer.DealValue/100, account.Customer.DealStage))
	case models.KindPartner:
		s.WriteString(fmt.Sprintf("Opp:      %s (%s)\n", account.Partner.Opportunity, account.Partner.PartnerType))
	}

	s.WriteString("\n")
	s.WriteString("Contacts:\n")
	if len(account.Contacts) == 0 {
		s.WriteString(dimStyle.Render("  (none)"))
		s.WriteString("\n")
	}
	for i, contact := range account.Contacts {
		line := fmt.Sprintf("%-24s %-28s %s", truncate(contact.Name, 24), contact.Email, contact.Title)
		marker := "  "
		if selected := m.sess.SelectedContact(); selected != nil && selected.ID == contact.ID {
			marker = "* "
		}
		if i == m.contactCursor {
			s.WriteString(selectedRowStyle.Render("▶ " + marker + line))
		} else {
			s.WriteString("  " + marker + line)
		}
		s.WriteString("\n")
	}

	if contact := m.sess.SelectedContact(); contact != nil {
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("Meetings with %s: %d\n", contact.Name, len(contact.Meetings)))
		for _, meeting := range contact.Meetings {
			s.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %s", meeting.Timestamp.Format("2006-01-02"), meeting.Title)))
			s.WriteString("\n")
		}
	}

	if len(account.Notes) > 0 {
		s.WriteString("\nNotes:\n")
		for _, note := range account.Notes {
			s.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %s", note.CreatedAt.Format("2006-01-02"), truncate(note.Body, 60))))
			s.WriteString("\n")
		}
	}

	s.WriteString(helpStyle.Render("↑/↓: contacts • enter: select contact • x: delete contact • n: next action • p: cycle priority • esc: back"))
	return s.String()
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	account := m.sess.SelectedAccount()
	if account == nil {
		m.viewMode = ViewList
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.sess.ClearSelection()
		m.viewMode = ViewList
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.contactCursor > 0 {
			m.contactCursor--
		}
	case "down", "j":
		if m.contactCursor < len(account.Contacts)-1 {
			m.contactCursor++
		}
	case "enter":
		if m.contactCursor < len(account.Contacts) {
			m.sess.SelectContact(&account.Contacts[m.contactCursor])
		}
	case "x":
		if contact := m.sess.SelectedContact(); contact != nil {
			return m.guardedWrite(func() error {
				return db.DeleteContact(m.db, contact.ID)
			})
		}
	case "n":
		return m.openEditAction()
	case "p":
		updated := *account
		updated.Priority = nextPriority(account.Priority)
		return m.guardedWrite(func() error {
			return db.UpdateAccount(m.db, account.ID, &updated)
		})
	}

	return m, nil
}

// guardedWrite runs a single-entity write under the mutation guard and then
// reloads the snapshot. On failure the error is shown and the displayed
// state is untouched; nothing optimistic was applied.
func (m Model) guardedWrite(write func() error) (tea.Model, tea.Cmd) {
	if err := m.sess.Guard.Run(write); err != nil {
		m.statusMessage = "Error: " + err.Error()
		return m, nil
	}
	m.statusMessage = ""
	return m, m.loadSnapshot()
}

func nextPriority(current string) string {
	switch current {
	case models.PriorityLow:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityHigh
	default:
		return models.PriorityLow
	}
}
