// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB) error {
	log.Println("Starting rolo MCP server...")

	accountHandlers := handlers.NewAccountHandlers(db)
	contactHandlers := handlers.NewContactHandlers(db)
	taskHandlers := handlers.NewTaskHandlers(db)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rolo",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_account",
		Description: "Add a new account (investor, customer or partner) to the workspace",
	}, accountHandlers.AddAccount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_account",
		Description: "Look up an account by name (case-insensitive)",
	}, accountHandlers.FindAccount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_accounts",
		Description: "List all accounts in the workspace",
	}, accountHandlers.ListAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_account",
		Description: "Update an existing account's name, status or priority",
	}, accountHandlers.UpdateAccount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_account",
		Description: "Delete an account and everything attached to it",
	}, accountHandlers.DeleteAccount)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact under an account",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contact",
		Description: "Look up a contact by email address",
	}, contactHandlers.FindContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_meeting",
		Description: "Record a meeting with a contact",
	}, contactHandlers.LogMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task, optionally linked to an account or contact",
	}, taskHandlers.CreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, optionally filtered by account or status",
	}, taskHandlers.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as done",
	}, taskHandlers.CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task",
	}, taskHandlers.DeleteTask)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
