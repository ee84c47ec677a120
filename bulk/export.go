// ABOUTME: CSV export formatting for account subsets
// ABOUTME: Fixed header, "; " joins for multi-valued fields, quote doubling
package bulk

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/rolo/models"
)

// ExportHeader is the fixed column set of an account export.
const ExportHeader = "company,status,priority,contacts,next_action,next_action_date"

// FormatCSV renders accounts as CSV: one data row per account under the
// fixed header.
func FormatCSV(accounts []models.Account) string {
	var b strings.Builder
	b.WriteString(ExportHeader)
	b.WriteString("\n")

	for _, account := range accounts {
		names := make([]string, len(account.Contacts))
		for i, c := range account.Contacts {
			names[i] = c.Name
		}

		date := ""
		if account.NextActionDate != nil {
			date = account.NextActionDate.Format("2006-01-02")
		}

		fields := []string{
			account.Name,
			account.Status,
			account.Priority,
			strings.Join(names, "; "),
			account.NextAction,
			date,
		}
		for i, f := range fields {
			fields[i] = escapeField(f)
		}

		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}

	return b.String()
}

// escapeField doubles quote characters and wraps the field in quotes when it
// contains a quote, comma, or newline.
func escapeField(field string) string {
	if strings.ContainsAny(field, "\",\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// ExportFilename builds the output filename for a domain, e.g.
// accounts_export_2026-08-25.csv.
func ExportFilename(domain string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", domain, now.Format("2006-01-02"))
}
