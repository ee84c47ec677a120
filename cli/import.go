// ABOUTME: CSV import CLI command
// ABOUTME: Runs the batch import pipeline with progress output and a per-row failure report
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/importer"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

// ImportCommand imports contacts from a CSV file
func ImportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV file to import (required)")
	kind := fs.String("kind", "customer", "Kind for accounts created during import")
	_ = fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *file, err)
	}

	store := db.NewStore(database)
	guard := &session.Guard{}

	pipeline := importer.New(store, guard)
	pipeline.NewAccountKind = models.AccountKind(*kind)
	pipeline.OnProgress = func(done, total int) {
		fmt.Printf("\r  → Importing %d/%d...", done, total)
	}

	report, err := pipeline.Run(context.Background(), string(data))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Println()

	fmt.Printf("\n✓ Imported %d contact(s)\n", report.SuccessCount)
	if report.FailedCount > 0 {
		fmt.Printf("✗ %d row(s) failed:\n", report.FailedCount)
		for _, rowErr := range report.Errors {
			fmt.Printf("  line %d: %s\n", rowErr.Line, rowErr.Reason)
		}
	}

	return nil
}
