// ABOUTME: Account relationship graph generation
// ABOUTME: Renders accounts, their contacts and open tasks as a graphviz graph
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// GenerateAccountGraph renders one account (or, with a nil id, the whole
// workspace) with its contacts and open tasks.
func (g *GraphGenerator) GenerateAccountGraph(accountID *uuid.UUID) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	var accounts []models.Account
	if accountID != nil {
		account, err := db.GetAccount(g.db, *accountID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch account: %w", err)
		}
		if account == nil {
			return "", fmt.Errorf("account not found: %s", accountID)
		}
		account.Contacts, err = db.ListContactsForAccount(g.db, account.ID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch contacts: %w", err)
		}
		accounts = []models.Account{*account}
	} else {
		accounts, err = db.ListAccounts(g.db)
		if err != nil {
			return "", fmt.Errorf("failed to fetch accounts: %w", err)
		}
	}

	accountNodes := make(map[uuid.UUID]*cgraph.Node)
	contactNodes := make(map[uuid.UUID]*cgraph.Node)

	for i := range accounts {
		account := &accounts[i]

		node, err := graph.CreateNodeByName(fmt.Sprintf("account_%s", account.ID.String()[:8]))
		if err != nil {
			return "", fmt.Errorf("failed to create account node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%s)", account.Name, account.Kind))
		node.SetShape(cgraph.BoxShape)
		accountNodes[account.ID] = node

		for j := range account.Contacts {
			contact := &account.Contacts[j]

			cnode, err := graph.CreateNodeByName(fmt.Sprintf("contact_%s", contact.ID.String()[:8]))
			if err != nil {
				return "", fmt.Errorf("failed to create contact node: %w", err)
			}
			label := contact.Name
			if contact.Title != "" {
				label += "\n" + contact.Title
			}
			cnode.SetLabel(label)
			contactNodes[contact.ID] = cnode

			if _, err := graph.CreateEdgeByName("", node, cnode); err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
		}
	}

	// Attach open tasks to the entity they reference
	tasks, err := db.ListTasks(g.db, accountID, models.TaskTodo)
	if err != nil {
		return "", fmt.Errorf("failed to fetch tasks: %w", err)
	}

	for i := range tasks {
		task := &tasks[i]

		var parent *cgraph.Node
		if task.ContactID != nil {
			parent = contactNodes[*task.ContactID]
		}
		if parent == nil && task.AccountID != nil {
			parent = accountNodes[*task.AccountID]
		}
		if parent == nil {
			continue
		}

		tnode, err := graph.CreateNodeByName(fmt.Sprintf("task_%s", task.ID.String()[:8]))
		if err != nil {
			return "", fmt.Errorf("failed to create task node: %w", err)
		}
		tnode.SetLabel(task.Text)
		tnode.SetShape(cgraph.NoteShape)

		edge, err := graph.CreateEdgeByName("", parent, tnode)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(task.Priority)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
