package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

func investorAccount(name string, contacts ...models.Contact) models.Account {
	return models.Account{
		ID:       uuid.New(),
		Kind:     models.KindInvestor,
		Name:     name,
		Investor: &models.InvestorFields{},
		Contacts: contacts,
	}
}

func TestBuildIndexResolvesAccountsAndContacts(t *testing.T) {
	alice := models.Contact{ID: uuid.New(), Name: "Alice"}
	bob := models.Contact{ID: uuid.New(), Name: "Bob"}

	accounts := []models.Account{
		investorAccount("Acme Capital", alice),
		investorAccount("Globex", bob),
	}

	idx := BuildIndex(accounts)

	if got := idx.Account(accounts[0].ID); got == nil || got.Name != "Acme Capital" {
		t.Fatalf("Account(%v) = %v, want Acme Capital", accounts[0].ID, got)
	}
	if got := idx.Account(uuid.New()); got != nil {
		t.Errorf("expected nil for unknown account id, got %v", got)
	}

	ref, ok := idx.Contact(bob.ID)
	if !ok {
		t.Fatal("expected to resolve Bob")
	}
	if ref.Contact.Name != "Bob" {
		t.Errorf("contact = %q, want Bob", ref.Contact.Name)
	}
	if ref.Account.Name != "Globex" {
		t.Errorf("parent account = %q, want Globex", ref.Account.Name)
	}

	if _, ok := idx.Contact(uuid.New()); ok {
		t.Error("expected unknown contact id to miss")
	}
}

func TestBuildIndexPointersTrackSnapshot(t *testing.T) {
	contact := models.Contact{ID: uuid.New(), Name: "Carol"}
	accounts := []models.Account{investorAccount("Initech", contact)}

	idx := BuildIndex(accounts)

	// The index points into the snapshot, not at copies.
	accounts[0].Status = "active"
	if idx.Account(accounts[0].ID).Status != "active" {
		t.Error("expected index to share the snapshot's backing array")
	}
}

func TestBuildIndexEmptySnapshot(t *testing.T) {
	idx := BuildIndex(nil)
	if len(idx.Accounts) != 0 || len(idx.Contacts) != 0 {
		t.Error("expected empty index for empty snapshot")
	}
}
