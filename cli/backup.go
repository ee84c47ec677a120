// ABOUTME: Charm KV backup CLI commands
// ABOUTME: Pushes and pulls account payloads through Charm Cloud
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/harperreed/rolo/charm"
	"github.com/harperreed/rolo/sync"
)

// BackupCommand pushes all accounts to Charm KV
func BackupCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	_ = fs.Parse(args)

	client, err := charm.GetClient()
	if err != nil {
		return fmt.Errorf("failed to connect to Charm: %w", err)
	}

	pushed, err := sync.BackupAccounts(database, client)
	if err != nil {
		return fmt.Errorf("backup failed after %d account(s): %w", pushed, err)
	}

	fmt.Printf("✓ Backed up %d account(s) to %s\n", pushed, client.Config().Host)
	return nil
}

// RestoreCommand pulls accounts from Charm KV into the local database
func RestoreCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	_ = fs.Parse(args)

	client, err := charm.GetClient()
	if err != nil {
		return fmt.Errorf("failed to connect to Charm: %w", err)
	}

	restored, err := sync.RestoreAccounts(database, client)
	if err != nil {
		return fmt.Errorf("restore failed after %d account(s): %w", restored, err)
	}

	fmt.Printf("✓ Restored %d account(s)\n", restored)
	return nil
}
