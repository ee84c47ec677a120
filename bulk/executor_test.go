package bulk

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

type fakeDeleter struct {
	calls  []uuid.UUID
	failOn map[uuid.UUID]bool
}

func (f *fakeDeleter) DeleteAccount(id uuid.UUID) error {
	f.calls = append(f.calls, id)
	if f.failOn[id] {
		return errors.New("write rejected")
	}
	return nil
}

func newExecutorForTest(store Deleter) *Executor {
	e := NewExecutor(store, nil)
	e.pause = 0
	return e
}

func TestDeleteSelectedIssuesOneCallPerID(t *testing.T) {
	store := &fakeDeleter{}
	e := newExecutorForTest(store)
	e.EnterSelectionMode()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		e.Toggle(id)
	}

	report := e.DeleteSelected()

	if report.Attempted != 3 || report.Deleted != 3 {
		t.Errorf("report = %+v, want 3/3", report)
	}
	if len(store.calls) != 3 {
		t.Fatalf("delete calls = %d, want 3", len(store.calls))
	}
	for i, id := range ids {
		if store.calls[i] != id {
			t.Errorf("call %d = %v, want %v (selection order)", i, store.calls[i], id)
		}
	}
}

func TestDeleteSelectedFailureDoesNotBlockRemaining(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	store := &fakeDeleter{failOn: map[uuid.UUID]bool{ids[1]: true}}
	e := newExecutorForTest(store)
	e.EnterSelectionMode()
	for _, id := range ids {
		e.Toggle(id)
	}

	report := e.DeleteSelected()

	if len(store.calls) != 3 {
		t.Errorf("all ids must still be attempted, got %d calls", len(store.calls))
	}
	if report.Attempted != 3 || report.Deleted != 2 {
		t.Errorf("report = %+v, want attempted 3 deleted 2", report)
	}
}

func TestDeleteSelectedClearsSelectionAndExitsMode(t *testing.T) {
	store := &fakeDeleter{}
	e := newExecutorForTest(store)
	e.EnterSelectionMode()
	e.Toggle(uuid.New())

	e.DeleteSelected()

	if e.SelectionMode() {
		t.Error("selection mode must end after the action")
	}
	if e.SelectionCount() != 0 {
		t.Error("selection set must be cleared")
	}
}

func TestToggleRemovesFromSelection(t *testing.T) {
	e := newExecutorForTest(&fakeDeleter{})
	e.EnterSelectionMode()

	id := uuid.New()
	e.Toggle(id)
	if !e.Selected(id) {
		t.Fatal("expected id selected")
	}
	e.Toggle(id)
	if e.Selected(id) || e.SelectionCount() != 0 {
		t.Error("expected toggle to deselect")
	}

	if report := e.DeleteSelected(); report.Attempted != 0 {
		t.Errorf("nothing selected, attempted = %d", report.Attempted)
	}
}

func TestDeleteSelectedGuarded(t *testing.T) {
	var guard session.Guard
	store := &fakeDeleter{}
	e := NewExecutor(store, &guard)
	e.pause = 0
	e.EnterSelectionMode()
	e.Toggle(uuid.New())

	e.DeleteSelected()

	if guard.Armed() {
		t.Error("guard must clear when the bulk delete settles")
	}
}

func TestExportSelectedSubsetOnly(t *testing.T) {
	accounts := []models.Account{
		{ID: uuid.New(), Kind: models.KindCustomer, Name: "Acme", Customer: &models.CustomerFields{}},
		{ID: uuid.New(), Kind: models.KindCustomer, Name: "Globex", Customer: &models.CustomerFields{}},
		{ID: uuid.New(), Kind: models.KindCustomer, Name: "Initech", Customer: &models.CustomerFields{}},
	}

	e := newExecutorForTest(&fakeDeleter{})
	e.EnterSelectionMode()
	e.Toggle(accounts[0].ID)
	e.Toggle(accounts[2].ID)

	out := e.ExportSelected(accounts)

	lines := nonEmptyLines(out)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d lines", len(lines))
	}
	if lines[0] != ExportHeader {
		t.Errorf("header = %q", lines[0])
	}
	if e.SelectionMode() || e.SelectionCount() != 0 {
		t.Error("export must clear selection like any bulk action")
	}
}
