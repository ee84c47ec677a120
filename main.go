// ABOUTME: Entry point for the rolo workspace TUI, MCP server and CLI
// ABOUTME: Routes to subcommands based on arguments; TUI is the default
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adrg/xdg"
	"github.com/harperreed/rolo/charm"
	"github.com/harperreed/rolo/cli"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/tui"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/rolo/rolo.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("rolo version %s\n", version)
		os.Exit(0)
	}

	database, err := db.OpenDatabase(getDatabasePath(*dbPath))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Println("Database initialized successfully")
		os.Exit(0)
	}

	args := flag.Args()

	// No command: run the TUI
	if len(args) == 0 {
		program := tea.NewProgram(tui.NewModel(database), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}
		return
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "add-account":
		run(cli.AddAccountCommand(database, commandArgs))
	case "list-accounts":
		run(cli.ListAccountsCommand(database, commandArgs))
	case "delete-accounts":
		run(cli.DeleteAccountsCommand(database, commandArgs))
	case "import":
		run(cli.ImportCommand(database, commandArgs))
	case "export":
		run(cli.ExportCommand(database, commandArgs))
	case "dupes":
		run(cli.DupesCommand(database, commandArgs))

	case "viz":
		if len(commandArgs) == 0 {
			fmt.Println("Error: viz requires a subcommand (graph or dashboard)")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "graph":
			run(cli.VizGraphCommand(database, commandArgs[1:]))
		case "dashboard":
			run(cli.VizDashboardCommand(database, commandArgs[1:]))
		default:
			fmt.Printf("Unknown viz command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "init":
			run(cli.SyncInitCommand(database, commandArgs[1:]))
		case "calendar":
			run(cli.SyncCalendarCommand(database, commandArgs[1:]))
		case "backup":
			run(cli.BackupCommand(database, commandArgs[1:]))
		case "restore":
			run(cli.RestoreCommand(database, commandArgs[1:]))
		case "link":
			run(charm.SyncLinkCommand(commandArgs[1:]))
		case "status":
			run(charm.SyncStatusCommand(commandArgs[1:]))
		case "unlink":
			run(charm.SyncUnlinkCommand(commandArgs[1:]))
		case "wipe":
			run(charm.SyncWipeCommand(commandArgs[1:]))
		case "now":
			run(charm.SyncNowCommand(commandArgs[1:]))
		case "auto":
			run(charm.SetAutoSyncCommand(commandArgs[1:]))
		default:
			fmt.Printf("Unknown sync command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "rolo", "rolo.db")
}

func printUsage() {
	fmt.Printf(`rolo v%s - relationship workspace

USAGE:
  rolo [global flags] [command] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/rolo/rolo.db)
  --init                 Initialize database and exit

COMMANDS:
  (none)                 Launch the TUI
  mcp                    Start MCP server for Claude Desktop

  add-account            Add an account
    --name <name>          Account name (required)
    --kind <kind>          investor, customer or partner (default: customer)
    --priority <p>         low, medium or high
    --check-size <cents>   Check size (investor)
    --deal-value <cents>   Deal value (customer)
    --opportunity <text>   Opportunity (partner)

  list-accounts          List accounts
    --kind <kind>          Filter by kind

  delete-accounts <name>...  Delete accounts by name (asks for confirmation)
    --yes                  Skip confirmation

  import                 Import contacts from CSV
    --file <path>          CSV file with name,email[,phone,title,company] header
    --kind <kind>          Kind for accounts created during import

  export                 Export accounts to CSV
    --kind <kind>          Only export this kind
    --output <file>        Output file (default: dated filename)

  dupes                  Find likely duplicate accounts

  viz graph [id]         Generate account graph (graphviz)
    --output <file>        Output file (default: stdout)
  viz dashboard          Render workspace dashboard

  sync init              Authenticate with Google (OAuth)
  sync calendar          Import meetings from Google Calendar
    --initial              Full import (last 6 months)
  sync backup            Push accounts to Charm Cloud
  sync restore           Pull accounts from Charm Cloud
  sync link              Link this device to a Charm account
  sync status            Show backup link status
  sync now               Sync with the Charm server immediately
    --verbose              Show verbose output
  sync auto              Toggle auto-sync
    --enable|--disable
  sync wipe              Delete all backed-up data
    --confirm              Required to actually wipe
  sync unlink            How to disconnect this device

EXAMPLES:
  rolo
  rolo import --file leads.csv --kind investor
  rolo export --kind customer
  rolo sync calendar --initial
`, version)
}
