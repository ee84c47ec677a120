package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

// fakeStore simulates the lagging snapshot: accounts created during the run
// are NOT visible through FindAccountByName until flush is called, which is
// exactly the condition the in-run cache exists for.
type fakeStore struct {
	visible []*models.Account
	pending []*models.Account

	contacts       map[uuid.UUID][]*models.Contact
	failContact    bool
	accountCreates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{contacts: make(map[uuid.UUID][]*models.Contact)}
}

func (f *fakeStore) FindAccountByName(name string) (*models.Account, error) {
	for _, a := range f.visible {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateAccount(account *models.Account) error {
	account.ID = uuid.New()
	f.pending = append(f.pending, account)
	f.accountCreates++
	return nil
}

func (f *fakeStore) CreateContact(accountID uuid.UUID, contact *models.Contact) error {
	if f.failContact {
		return errors.New("write rejected")
	}
	contact.ID = uuid.New()
	contact.AccountID = accountID
	f.contacts[accountID] = append(f.contacts[accountID], contact)
	return nil
}

func TestRunReportsPerRowFailures(t *testing.T) {
	// File line 3 has an empty email.
	text := "name,email,company\nAlice,alice@x.com,Acme\nBob,,Acme\nCarol,carol@x.com,Acme\n"

	store := newFakeStore()
	report, err := New(store, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", report.SuccessCount)
	}
	if report.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", report.FailedCount)
	}
	if len(report.Errors) != 1 || report.Errors[0].Line != 3 {
		t.Fatalf("errors = %+v, want one error at line 3", report.Errors)
	}
	if !strings.Contains(report.Errors[0].Reason, "missing required fields") {
		t.Errorf("reason = %q", report.Errors[0].Reason)
	}
	if report.Errors[0].Raw != "Bob,,Acme" {
		t.Errorf("raw = %q", report.Errors[0].Raw)
	}
}

func TestRunReusesAccountCreatedEarlierInRun(t *testing.T) {
	// Two rows share a company with no pre-existing account; the backing
	// snapshot never shows in-run creations, so only the cache can prevent
	// a duplicate.
	text := "name,email,company\nAlice,alice@x.com,Vandelay\nBob,bob@x.com,Vandelay\n"

	store := newFakeStore()
	report, err := New(store, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.SuccessCount != 2 || report.FailedCount != 0 {
		t.Fatalf("report = %+v", report)
	}
	if store.accountCreates != 1 {
		t.Errorf("account creates = %d, want exactly 1", store.accountCreates)
	}

	accountID := store.pending[0].ID
	if len(store.contacts[accountID]) != 2 {
		t.Errorf("expected both contacts attached to the one account, got %d", len(store.contacts[accountID]))
	}
}

func TestRunCacheIsCaseInsensitive(t *testing.T) {
	text := "name,email,company\nAlice,alice@x.com,Vandelay\nBob,bob@x.com,VANDELAY \n"

	store := newFakeStore()
	if _, err := New(store, nil).Run(context.Background(), text); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if store.accountCreates != 1 {
		t.Errorf("account creates = %d, want 1", store.accountCreates)
	}
}

func TestRunAttachesToExistingAccount(t *testing.T) {
	existing := &models.Account{ID: uuid.New(), Kind: models.KindCustomer, Name: "Acme", Customer: &models.CustomerFields{}}
	store := newFakeStore()
	store.visible = []*models.Account{existing}

	text := "name,email,company\nAlice,alice@x.com,acme\n"
	if _, err := New(store, nil).Run(context.Background(), text); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if store.accountCreates != 0 {
		t.Errorf("must not create an account when a case-insensitive match exists")
	}
	if len(store.contacts[existing.ID]) != 1 {
		t.Errorf("contact not attached to existing account")
	}
}

func TestRunBlankCompanyIsRowFailure(t *testing.T) {
	text := "name,email,company\nAlice,alice@x.com,\n"

	store := newFakeStore()
	report, err := New(store, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.FailedCount != 1 || report.SuccessCount != 0 {
		t.Fatalf("report = %+v", report)
	}
	if !strings.Contains(report.Errors[0].Reason, "company") {
		t.Errorf("reason = %q", report.Errors[0].Reason)
	}
}

func TestRunContactWriteFailureDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	store.failContact = true

	text := "name,email,company\nAlice,alice@x.com,Acme\nBob,bob@x.com,Acme\n"
	report, err := New(store, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatalf("a batch with row failures is not itself an error: %v", err)
	}
	if report.FailedCount != 2 || report.SuccessCount != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunProgressAndGuard(t *testing.T) {
	var guard session.Guard
	store := newFakeStore()

	p := New(store, &guard)
	var progress []int
	armedDuringRun := false
	p.OnProgress = func(done, total int) {
		progress = append(progress, done)
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		if guard.Armed() {
			armedDuringRun = true
		}
	}

	text := "name,email,company\nAlice,alice@x.com,Acme\nBob,bob@x.com,Acme\n"
	if _, err := p.Run(context.Background(), text); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(progress) != 2 || progress[0] != 1 || progress[1] != 2 {
		t.Errorf("progress = %v, want [1 2]", progress)
	}
	if !armedDuringRun {
		t.Error("guard must be armed while the batch runs")
	}
	if guard.Armed() {
		t.Error("guard must clear when the batch settles")
	}
}

func TestRunCancellationStopsBetweenRows(t *testing.T) {
	store := newFakeStore()
	p := New(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.OnProgress = func(done, total int) {
		if done == 1 {
			cancel()
		}
	}

	text := "name,email,company\nAlice,alice@x.com,Acme\nBob,bob@x.com,Acme\nCarol,carol@x.com,Acme\n"
	report, err := p.Run(ctx, text)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.SuccessCount != 1 {
		t.Errorf("rows written before cancel stay written, got %d", report.SuccessCount)
	}
}
