// ABOUTME: Visualization CLI commands
// ABOUTME: Handles dashboard rendering and account graph generation
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/harperreed/rolo/viz"
)

// VizGraphCommand generates an account relationship graph.
func VizGraphCommand(db *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(db)

	var accountID *uuid.UUID
	if fs.NArg() > 0 {
		id, err := uuid.Parse(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("invalid account ID: %w", err)
		}
		accountID = &id
	}

	dot, err := generator.GenerateAccountGraph(accountID)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	fmt.Println(dot)
	return nil
}

// VizDashboardCommand renders the workspace dashboard.
func VizDashboardCommand(db *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz dashboard", flag.ExitOnError)
	_ = fs.Parse(args)

	stats, err := viz.GenerateDashboardStats(db)
	if err != nil {
		return err
	}

	fmt.Print(viz.RenderDashboard(stats))
	return nil
}
