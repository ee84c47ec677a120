// ABOUTME: Tests for dashboard statistics generation
// ABOUTME: Validates per-kind grouping, drift detection, and overdue tasks
package viz

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return database
}

func TestGenerateDashboardStats(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	investor := &models.Account{
		Kind:       models.KindInvestor,
		Name:       "Fund A",
		NextAction: "send deck",
		Investor:   &models.InvestorFields{CheckSize: 10000000},
	}
	if err := db.CreateAccount(database, investor); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	drifting := &models.Account{
		Kind:     models.KindCustomer,
		Name:     "Acme",
		Priority: models.PriorityHigh,
		Customer: &models.CustomerFields{DealValue: 5000000},
	}
	if err := db.CreateAccount(database, drifting); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if err := db.CreateContact(database, drifting.ID, &models.Contact{Name: "Jane"}); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	pastDue := time.Now().AddDate(0, 0, -3)
	if err := db.CreateTask(database, &models.Task{
		Text:    "overdue follow-up",
		Status:  models.TaskTodo,
		DueDate: &pastDue,
	}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	stats, err := GenerateDashboardStats(database)
	if err != nil {
		t.Fatalf("GenerateDashboardStats failed: %v", err)
	}

	if stats.TotalAccounts != 2 {
		t.Errorf("Expected 2 accounts, got %d", stats.TotalAccounts)
	}
	if stats.TotalContacts != 1 {
		t.Errorf("Expected 1 contact, got %d", stats.TotalContacts)
	}
	if stats.AccountsByKind[models.KindInvestor].Value != 10000000 {
		t.Errorf("Unexpected investor value: %d", stats.AccountsByKind[models.KindInvestor].Value)
	}
	if len(stats.Drifting) != 1 || stats.Drifting[0].Name != "Acme" {
		t.Errorf("Expected Acme to be drifting, got %+v", stats.Drifting)
	}
	if len(stats.OverdueTasks) != 1 {
		t.Errorf("Expected 1 overdue task, got %d", len(stats.OverdueTasks))
	}

	rendered := RenderDashboard(stats)
	if !strings.Contains(rendered, "2 accounts") {
		t.Errorf("Rendered dashboard missing account count:\n%s", rendered)
	}
	if !strings.Contains(rendered, "NEEDS ATTENTION") {
		t.Errorf("Rendered dashboard missing attention section:\n%s", rendered)
	}
}
