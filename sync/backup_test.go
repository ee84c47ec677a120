// ABOUTME: Tests for Charm KV account backup and restore
// ABOUTME: Uses the in-memory test client so no server is required
package sync

import (
	"testing"

	"github.com/harperreed/rolo/charm"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

func TestBackupAndRestoreAccounts(t *testing.T) {
	source := setupTestDB(t)
	defer source.Close()

	client, cleanup := charm.NewTestClient(t)
	defer cleanup()

	account := &models.Account{
		Kind:     models.KindInvestor,
		Name:     "Sequoia",
		Status:   "active",
		Priority: models.PriorityHigh,
		Investor: &models.InvestorFields{CheckSize: 25000000, Stage: "series-a"},
	}
	if err := db.CreateAccount(source, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := db.CreateContact(source, account.ID, &models.Contact{
		Name: "Roelof", Email: "roelof@sequoia.example",
	}); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	pushed, err := BackupAccounts(source, client)
	if err != nil {
		t.Fatalf("BackupAccounts failed: %v", err)
	}
	if pushed != 1 {
		t.Errorf("Expected 1 pushed account, got %d", pushed)
	}

	// Restore into a fresh database
	target := setupTestDB(t)
	defer target.Close()

	restored, err := RestoreAccounts(target, client)
	if err != nil {
		t.Fatalf("RestoreAccounts failed: %v", err)
	}
	if restored != 1 {
		t.Errorf("Expected 1 restored account, got %d", restored)
	}

	got, err := db.FindAccountByName(target, "Sequoia")
	if err != nil {
		t.Fatalf("FindAccountByName failed: %v", err)
	}
	if got == nil {
		t.Fatal("Restored account not found")
	}
	if got.Investor == nil || got.Investor.CheckSize != 25000000 {
		t.Errorf("Investor payload not restored: %+v", got.Investor)
	}

	contacts, err := db.ListContactsForAccount(target, got.ID)
	if err != nil {
		t.Fatalf("ListContactsForAccount failed: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Email != "roelof@sequoia.example" {
		t.Errorf("Contacts not restored: %+v", contacts)
	}
}

func TestBackupPrunesStaleAccounts(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	client, cleanup := charm.NewTestClient(t)
	defer cleanup()

	keep := &models.Account{Kind: models.KindCustomer, Name: "Keeper", Customer: &models.CustomerFields{}}
	doomed := &models.Account{Kind: models.KindCustomer, Name: "Doomed", Customer: &models.CustomerFields{}}
	for _, account := range []*models.Account{keep, doomed} {
		if err := db.CreateAccount(database, account); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
	}

	if _, err := BackupAccounts(database, client); err != nil {
		t.Fatalf("BackupAccounts failed: %v", err)
	}

	if err := db.DeleteAccount(database, doomed.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	pushed, err := BackupAccounts(database, client)
	if err != nil {
		t.Fatalf("BackupAccounts failed: %v", err)
	}
	if pushed != 1 {
		t.Errorf("Expected 1 pushed account, got %d", pushed)
	}

	// The deleted account's payload is gone from the store
	keys, err := client.KeysWithPrefix([]byte(charm.AccountKeyPrefix))
	if err != nil {
		t.Fatalf("KeysWithPrefix failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("Expected 1 backup key after prune, got %d", len(keys))
	}
	if string(keys[0]) != charm.AccountKeyPrefix+keep.ID.String() {
		t.Errorf("Wrong key survived prune: %s", keys[0])
	}

	// A restore into a fresh database cannot resurrect it
	target := setupTestDB(t)
	defer target.Close()
	if _, err := RestoreAccounts(target, client); err != nil {
		t.Fatalf("RestoreAccounts failed: %v", err)
	}
	if got, _ := db.FindAccountByName(target, "Doomed"); got != nil {
		t.Error("Pruned account was restored")
	}
}

func TestRestoreSkipsExistingAccounts(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	client, cleanup := charm.NewTestClient(t)
	defer cleanup()

	account := &models.Account{
		Kind:     models.KindPartner,
		Name:     "Globex",
		Partner:  &models.PartnerFields{Opportunity: "reseller"},
		Priority: models.PriorityLow,
	}
	if err := db.CreateAccount(database, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if _, err := BackupAccounts(database, client); err != nil {
		t.Fatalf("BackupAccounts failed: %v", err)
	}

	// Restoring into the same database creates nothing new
	restored, err := RestoreAccounts(database, client)
	if err != nil {
		t.Fatalf("RestoreAccounts failed: %v", err)
	}
	if restored != 0 {
		t.Errorf("Expected 0 restored, got %d", restored)
	}

	accounts, err := db.ListAccounts(database)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("Expected 1 account, got %d", len(accounts))
	}
}
