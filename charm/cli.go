// ABOUTME: CLI commands for managing the Charm Cloud backup link
// ABOUTME: SSH key auth; pairs with `rolo sync backup` and `rolo sync restore`
package charm

import (
	"flag"
	"fmt"
	"strings"
)

// SyncLinkCommand connects this device to a Charm account and verifies the
// link with a round-trip sync.
func SyncLinkCommand(args []string) error {
	fs := flag.NewFlagSet("sync link", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Linking to Charm Cloud (%s)...\n", cfg.Host)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}

	if id, err := c.ID(); err != nil {
		fmt.Println("✓ Device linked (account ID unavailable)")
	} else {
		fmt.Printf("✓ Linked to account: %s\n", id)
	}

	fmt.Println("\nBack up your workspace with `rolo sync backup`;")
	fmt.Println("any linked device can pull it with `rolo sync restore`.")
	return nil
}

// SyncStatusCommand prints the link state and backup inventory.
func SyncStatusCommand(args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ExitOnError)
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		// No usable KV store; still report the configured server.
		cfg, cfgErr := LoadConfig()
		if cfgErr != nil {
			return cfgErr
		}
		fmt.Print(statusReport(cfg, nil))
		return nil
	}

	fmt.Print(statusReport(c.Config(), c))
	return nil
}

// statusReport renders the sync status block. A nil client means the KV
// store could not be opened at all.
func statusReport(cfg *Config, c *Client) string {
	var s strings.Builder

	s.WriteString("Charm Backup Status\n")
	s.WriteString("───────────────────\n")
	fmt.Fprintf(&s, "Server:          %s\n", cfg.Host)
	fmt.Fprintf(&s, "Auto-sync:       %v\n", cfg.AutoSync)

	if c == nil || !c.IsConnected() {
		s.WriteString("Status:          Not connected\n")
		s.WriteString("\nCharm authenticates with SSH keys; run `rolo sync link` to connect.\n")
		return s.String()
	}

	s.WriteString("Status:          Connected\n")
	if id, err := c.ID(); err == nil {
		fmt.Fprintf(&s, "Account:         %s\n", id)
	}

	if keys, err := c.KeysWithPrefix([]byte(AccountKeyPrefix)); err == nil {
		fmt.Fprintf(&s, "Account backups: %d\n", len(keys))
	}

	return s.String()
}

// SyncUnlinkCommand explains how to disconnect; charm has no unlink API,
// the link lives in the account's SSH keys.
func SyncUnlinkCommand(args []string) error {
	fs := flag.NewFlagSet("sync unlink", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println("To unlink this device from Charm Cloud:")
	fmt.Println()
	fmt.Println("  1. Remove this device's SSH key from your Charm account")
	fmt.Println("  2. Delete local charm data: rm -rf ~/.local/share/charm")
	fmt.Println()
	fmt.Println("The local rolo database in ~/.local/share/rolo is not affected.")
	return nil
}

// SyncWipeCommand drops every key in the KV store, backups included.
func SyncWipeCommand(args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "Confirm wiping all backed-up data")
	_ = fs.Parse(args)

	if !*confirm {
		fmt.Println("WARNING: this deletes every backup in the KV store.")
		fmt.Println()
		fmt.Println("To confirm, run:")
		fmt.Println("  rolo sync wipe --confirm")
		return nil
	}

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	fmt.Println("✓ Backup store wiped")
	fmt.Println("Your Charm account is still linked; `rolo sync backup` repopulates it.")
	return nil
}

// SyncNowCommand forces an immediate sync with the server.
func SyncNowCommand(args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	if *verbose {
		fmt.Println("Syncing with server...")
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println("✓ Synced")
	return nil
}

// SetAutoSyncCommand toggles syncing after every backup write.
func SetAutoSyncCommand(args []string) error {
	fs := flag.NewFlagSet("sync auto", flag.ExitOnError)
	enable := fs.Bool("enable", false, "Enable auto-sync")
	disable := fs.Bool("disable", false, "Disable auto-sync")
	_ = fs.Parse(args)

	if *enable == *disable {
		fmt.Println("Usage: rolo sync auto --enable|--disable")
		return nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.SetAutoSync(*enable); err != nil {
		return fmt.Errorf("failed to update auto-sync: %w", err)
	}

	if *enable {
		fmt.Println("✓ Auto-sync enabled")
	} else {
		fmt.Println("✓ Auto-sync disabled")
	}
	return nil
}
