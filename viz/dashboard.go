// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII workspace overview grouped by account kind
package viz

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type DashboardStats struct {
	// Accounts grouped by kind
	AccountsByKind map[models.AccountKind]KindStats

	TotalAccounts int
	TotalContacts int
	OpenTasks     int

	// Accounts without a next action
	Drifting []DriftingAccount

	// Tasks past their due date
	OverdueTasks []OverdueTask
}

type KindStats struct {
	Kind  models.AccountKind
	Count int
	// Value is check size for investors, deal value for customers, in cents.
	Value int64
}

type DriftingAccount struct {
	Name     string
	Priority string
}

type OverdueTask struct {
	Text        string
	DaysPastDue int
}

func GenerateDashboardStats(database *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{
		AccountsByKind: make(map[models.AccountKind]KindStats),
	}

	accounts, err := db.ListAccounts(database)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	stats.TotalAccounts = len(accounts)

	for i := range accounts {
		account := &accounts[i]

		kstats := stats.AccountsByKind[account.Kind]
		kstats.Kind = account.Kind
		kstats.Count++
		switch {
		case account.Investor != nil:
			kstats.Value += account.Investor.CheckSize
		case account.Customer != nil:
			kstats.Value += account.Customer.DealValue
		}
		stats.AccountsByKind[account.Kind] = kstats

		stats.TotalContacts += len(account.Contacts)

		if account.NextAction == "" {
			stats.Drifting = append(stats.Drifting, DriftingAccount{
				Name:     account.Name,
				Priority: account.Priority,
			})
		}
	}

	tasks, err := db.ListTasks(database, nil, models.TaskTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	stats.OpenTasks = len(tasks)

	now := time.Now()
	for _, task := range tasks {
		if task.DueDate != nil && task.DueDate.Before(now) {
			stats.OverdueTasks = append(stats.OverdueTasks, OverdueTask{
				Text:        task.Text,
				DaysPastDue: int(now.Sub(*task.DueDate).Hours() / 24),
			})
		}
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  ROLO WORKSPACE DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("ACCOUNTS\n")
	renderKinds(&out, stats.AccountsByKind)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🏢 %d accounts  📇 %d contacts  ☑ %d open tasks\n\n",
		stats.TotalAccounts, stats.TotalContacts, stats.OpenTasks))

	if len(stats.Drifting) > 0 || len(stats.OverdueTasks) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		if len(stats.Drifting) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d accounts with no next action\n", len(stats.Drifting)))
		}
		if len(stats.OverdueTasks) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d tasks past due\n", len(stats.OverdueTasks)))
		}
	}

	return out.String()
}

func renderKinds(out *strings.Builder, byKind map[models.AccountKind]KindStats) {
	kinds := []models.AccountKind{
		models.KindInvestor,
		models.KindCustomer,
		models.KindPartner,
	}

	maxCount := 0
	for _, kstats := range byKind {
		if kstats.Count > maxCount {
			maxCount = kstats.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, kind := range kinds {
		kstats, exists := byKind[kind]
		if !exists {
			continue
		}

		barLength := (kstats.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		amountK := kstats.Value / 100000
		out.WriteString(fmt.Sprintf("  %-9s %s  %2d ($%dK)\n",
			kind, bar, kstats.Count, amountK))
	}
}
