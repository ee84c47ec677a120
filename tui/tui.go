// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Wires collection snapshots through the session reconciler into views
package tui

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolo/bulk"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEditAction
	ViewConfirmDelete
)

// snapshotMsg carries a freshly loaded account collection.
type snapshotMsg struct {
	accounts []models.Account
	err      error
}

// noticeTickMsg fires when the transient notice should be re-checked.
type noticeTickMsg struct{}

// deleteDoneMsg reports a finished bulk delete.
type deleteDoneMsg struct {
	report bulk.DeleteReport
}

// Model is the main bubbletea model
type Model struct {
	db       *sql.DB
	store    *db.Store
	sess     *session.Session
	executor *bulk.Executor

	viewMode ViewMode
	accounts []models.Account

	// List view state
	cursor int

	// Detail view state
	contactCursor int

	// Next-action editor state
	actionInput textinput.Model

	// Status line
	statusMessage string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(database *sql.DB) Model {
	store := db.NewStore(database)
	sess := session.New()
	return Model{
		db:       database,
		store:    store,
		sess:     sess,
		executor: bulk.NewExecutor(store, &sess.Guard),
		viewMode: ViewList,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadSnapshot()
}

// loadSnapshot reloads the full collection from the store. Every reload goes
// through the reconciler; the views never hold entity copies of their own.
func (m Model) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.store.Snapshot()
		return snapshotMsg{accounts: accounts, err: err}
	}
}

func noticeTick() tea.Cmd {
	return tea.Tick(session.NoticeTTL, func(time.Time) tea.Msg {
		return noticeTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.accounts = msg.accounts

		hadSelection := m.sess.SelectedAccount() != nil
		m.sess.ApplySnapshot(m.accounts)

		if hadSelection && m.sess.SelectedAccount() == nil && m.viewMode == ViewDetail {
			m.viewMode = ViewList
		}
		if m.cursor >= len(m.accounts) && m.cursor > 0 {
			m.cursor = len(m.accounts) - 1
		}
		if m.sess.ActiveNotice() != nil {
			return m, noticeTick()
		}
		return m, nil

	case noticeTickMsg:
		// ActiveNotice drops the notice itself once the TTL has elapsed;
		// the tick only forces a redraw at that moment.
		m.sess.ActiveNotice()
		return m, nil

	case deleteDoneMsg:
		m.statusMessage = deleteSummary(msg.report)
		m.viewMode = ViewList
		return m, m.loadSnapshot()
	}

	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEditAction:
		return m.renderEditActionView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEditAction:
		return m.handleEditActionKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("235")).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
