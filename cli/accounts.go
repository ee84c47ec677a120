// ABOUTME: Account CLI commands
// ABOUTME: Human-friendly commands for managing accounts and their contacts
package cli

import (
	"bufio"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// AddAccountCommand adds a new account
func AddAccountCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-account", flag.ExitOnError)
	name := fs.String("name", "", "Account name (required)")
	kind := fs.String("kind", "customer", "Account kind: investor, customer or partner")
	status := fs.String("status", "", "Status label")
	priority := fs.String("priority", models.PriorityMedium, "Priority: low, medium or high")
	checkSize := fs.Int64("check-size", 0, "Check size in cents (investor)")
	stage := fs.String("stage", "", "Fundraise stage (investor)")
	dealValue := fs.Int64("deal-value", 0, "Deal value in cents (customer)")
	dealStage := fs.String("deal-stage", "", "Deal stage (customer)")
	opportunity := fs.String("opportunity", "", "Opportunity (partner)")
	partnerType := fs.String("partner-type", "", "Partner type (partner)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	account := &models.Account{
		Name:     *name,
		Kind:     models.AccountKind(*kind),
		Status:   *status,
		Priority: *priority,
	}

	switch account.Kind {
	case models.KindInvestor:
		account.Investor = &models.InvestorFields{CheckSize: *checkSize, Stage: *stage}
	case models.KindCustomer:
		account.Customer = &models.CustomerFields{DealValue: *dealValue, DealStage: *dealStage}
	case models.KindPartner:
		account.Partner = &models.PartnerFields{Opportunity: *opportunity, PartnerType: *partnerType}
	default:
		return fmt.Errorf("--kind must be investor, customer or partner")
	}

	if err := db.CreateAccount(database, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("✓ Account created: %s (ID: %s)\n", account.Name, account.ID)
	fmt.Printf("  Kind: %s\n", account.Kind)

	return nil
}

// ListAccountsCommand lists all accounts
func ListAccountsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-accounts", flag.ExitOnError)
	kind := fs.String("kind", "", "Filter by kind")
	_ = fs.Parse(args)

	accounts, err := db.ListAccounts(database)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	if *kind != "" {
		filtered := accounts[:0]
		for _, account := range accounts {
			if string(account.Kind) == *kind {
				filtered = append(filtered, account)
			}
		}
		accounts = filtered
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tPRIORITY\tSTATUS\tCONTACTS\tID")
	fmt.Fprintln(w, "----\t----\t--------\t------\t--------\t--")

	for _, account := range accounts {
		status := account.Status
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			account.Name, account.Kind, account.Priority, status,
			len(account.Contacts), account.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d account(s)\n", len(accounts))
	return nil
}

// DeleteAccountsCommand deletes one or more accounts by name, with an
// interactive confirmation when attached to a terminal.
func DeleteAccountsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-accounts", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation prompt")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("at least one account name is required")
	}

	var targets []*models.Account
	for _, name := range fs.Args() {
		account, err := db.FindAccountByName(database, name)
		if err != nil {
			return fmt.Errorf("failed to find account %q: %w", name, err)
		}
		if account == nil {
			return fmt.Errorf("account not found: %s", name)
		}
		targets = append(targets, account)
	}

	if !*yes {
		confirmed, err := confirmDelete(len(targets))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	deleted := 0
	for _, account := range targets {
		if err := db.DeleteAccount(database, account.ID); err != nil {
			fmt.Printf("  ! Failed to delete %s: %v\n", account.Name, err)
			continue
		}
		deleted++
	}

	fmt.Printf("✓ Deleted %d of %d account(s)\n", deleted, len(targets))
	return nil
}

// confirmDelete prompts on the terminal; non-interactive input refuses the
// delete so scripts must pass --yes explicitly.
func confirmDelete(count int) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("not a terminal; use --yes to confirm")
	}

	fmt.Printf("Delete %d account(s) and everything attached to them? [y/N] ", count)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
