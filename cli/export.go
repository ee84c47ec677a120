// ABOUTME: CSV export CLI command
// ABOUTME: Writes accounts of a chosen kind to a dated export file
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/harperreed/rolo/bulk"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// ExportCommand exports accounts to CSV
func ExportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := fs.String("kind", "", "Only export accounts of this kind")
	output := fs.String("output", "", "Output file (default: <kind>_export_<date>.csv)")
	_ = fs.Parse(args)

	accounts, err := db.ListAccounts(database)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	domain := "accounts"
	if *kind != "" {
		domain = *kind + "s"
		filtered := accounts[:0]
		for _, account := range accounts {
			if account.Kind == models.AccountKind(*kind) {
				filtered = append(filtered, account)
			}
		}
		accounts = filtered
	}

	if len(accounts) == 0 {
		fmt.Println("Nothing to export")
		return nil
	}

	content := bulk.FormatCSV(accounts)

	filename := *output
	if filename == "" {
		filename = bulk.ExportFilename(domain, time.Now())
	}

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	fmt.Printf("✓ Exported %d account(s) to %s\n", len(accounts), filename)
	return nil
}
