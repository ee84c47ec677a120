// ABOUTME: Bulk delete/export executor over a caller-selected subset
// ABOUTME: Sequential awaited writes, aggregate reporting, selection cleared on completion
package bulk

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

// Deleter is the slice of the write interface bulk delete needs.
type Deleter interface {
	DeleteAccount(id uuid.UUID) error
}

// DeleteReport is the aggregate result of a bulk delete. There is
// deliberately no per-item error list; the operator acts on counts.
type DeleteReport struct {
	Attempted int
	Deleted   int
}

// deletePause spaces out sequential delete calls to bound load on the
// backing store.
const deletePause = 100 * time.Millisecond

// Executor tracks a selection subset and applies delete or export to it.
// Writes are issued one at a time, each awaited before the next.
type Executor struct {
	store Deleter
	guard *session.Guard

	selectionMode bool
	selected      map[uuid.UUID]bool
	order         []uuid.UUID

	// pause between delete calls; overridable in tests.
	pause time.Duration
}

func NewExecutor(store Deleter, guard *session.Guard) *Executor {
	return &Executor{
		store:    store,
		guard:    guard,
		selected: make(map[uuid.UUID]bool),
		pause:    deletePause,
	}
}

// EnterSelectionMode starts a fresh selection.
func (e *Executor) EnterSelectionMode() {
	e.selectionMode = true
	e.selected = make(map[uuid.UUID]bool)
	e.order = nil
}

func (e *Executor) SelectionMode() bool { return e.selectionMode }

// ExitSelectionMode abandons the selection without running an action.
func (e *Executor) ExitSelectionMode() {
	e.exitSelection()
}

// Toggle adds or removes an id from the selection, preserving first-selected
// order for the ids that remain.
func (e *Executor) Toggle(id uuid.UUID) {
	if e.selected[id] {
		delete(e.selected, id)
		for i, existing := range e.order {
			if existing == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
		return
	}
	e.selected[id] = true
	e.order = append(e.order, id)
}

func (e *Executor) Selected(id uuid.UUID) bool { return e.selected[id] }
func (e *Executor) SelectionCount() int        { return len(e.selected) }

// DeleteSelected issues one delete per selected id, in selection order, with
// a fixed pause between calls. An individual failure does not block the
// remaining ids. The caller is responsible for having shown the confirmation
// step; once this method is running there is no cancellation.
func (e *Executor) DeleteSelected() DeleteReport {
	report := DeleteReport{Attempted: len(e.order)}

	work := func() error {
		for i, id := range e.order {
			if err := e.store.DeleteAccount(id); err == nil {
				report.Deleted++
			}
			if i < len(e.order)-1 && e.pause > 0 {
				time.Sleep(e.pause)
			}
		}
		return nil
	}

	if e.guard != nil {
		_ = e.guard.Run(work)
	} else {
		_ = work()
	}

	e.exitSelection()
	return report
}

// ExportSelected formats the selected subset as CSV, preserving snapshot
// order. Pure read: no persistence side effects. Selection is cleared on
// completion like any other bulk action.
func (e *Executor) ExportSelected(snapshot []models.Account) string {
	subset := make([]models.Account, 0, len(e.selected))
	for _, account := range snapshot {
		if e.selected[account.ID] {
			subset = append(subset, account)
		}
	}

	out := FormatCSV(subset)
	e.exitSelection()
	return out
}

func (e *Executor) exitSelection() {
	e.selectionMode = false
	e.selected = make(map[uuid.UUID]bool)
	e.order = nil
}
