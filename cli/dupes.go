// ABOUTME: Duplicate detection CLI command
// ABOUTME: Prints groups of accounts whose names match after normalization
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/dedupe"
)

// DupesCommand scans the workspace for likely duplicate accounts
func DupesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("dupes", flag.ExitOnError)
	_ = fs.Parse(args)

	accounts, err := db.ListAccounts(database)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	groups := dedupe.FindDuplicates(accounts)
	if len(groups) == 0 {
		fmt.Println("No likely duplicates found")
		return nil
	}

	fmt.Printf("Found %d group(s) of likely duplicates:\n\n", len(groups))
	for i, group := range groups {
		fmt.Printf("Group %d:\n", i+1)
		for _, account := range group.Accounts {
			fmt.Printf("  %-30s %-10s %s\n", account.Name, account.Kind, account.ID.String()[:8])
		}
		fmt.Println()
	}

	fmt.Println("Review each group before merging; matching is name-based and can flag false positives.")
	return nil
}
