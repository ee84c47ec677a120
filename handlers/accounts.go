// ABOUTME: Account MCP tool handlers
// ABOUTME: Implements add_account, find_account, update_account and delete_account tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type AccountHandlers struct {
	db *sql.DB
}

func NewAccountHandlers(database *sql.DB) *AccountHandlers {
	return &AccountHandlers{db: database}
}

type AddAccountInput struct {
	Name        string `json:"name" jsonschema:"Account name (required)"`
	Kind        string `json:"kind" jsonschema:"Account kind: investor, customer or partner (required)"`
	Status      string `json:"status,omitempty" jsonschema:"Free-form status label"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: low, medium or high (default medium)"`
	CheckSize   int64  `json:"check_size,omitempty" jsonschema:"Investor check size in cents (investor only)"`
	Stage       string `json:"stage,omitempty" jsonschema:"Fundraise stage (investor only)"`
	DealValue   int64  `json:"deal_value,omitempty" jsonschema:"Deal value in cents (customer only)"`
	DealStage   string `json:"deal_stage,omitempty" jsonschema:"Deal stage (customer only)"`
	Opportunity string `json:"opportunity,omitempty" jsonschema:"Partnership opportunity (partner only)"`
	PartnerType string `json:"partner_type,omitempty" jsonschema:"Partner type (partner only)"`
}

type AccountOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority"`
	Contacts  int    `json:"contacts"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *AccountHandlers) AddAccount(_ context.Context, request *mcp.CallToolRequest, input AddAccountInput) (*mcp.CallToolResult, AccountOutput, error) {
	if input.Name == "" {
		return nil, AccountOutput{}, fmt.Errorf("name is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	kind := models.AccountKind(input.Kind)
	account := &models.Account{
		Name:     input.Name,
		Kind:     kind,
		Status:   input.Status,
		Priority: priority,
	}

	switch kind {
	case models.KindInvestor:
		account.Investor = &models.InvestorFields{CheckSize: input.CheckSize, Stage: input.Stage}
	case models.KindCustomer:
		account.Customer = &models.CustomerFields{DealValue: input.DealValue, DealStage: input.DealStage}
	case models.KindPartner:
		account.Partner = &models.PartnerFields{Opportunity: input.Opportunity, PartnerType: input.PartnerType}
	default:
		return nil, AccountOutput{}, fmt.Errorf("kind must be investor, customer or partner")
	}

	if err := db.CreateAccount(h.db, account); err != nil {
		return nil, AccountOutput{}, fmt.Errorf("failed to create account: %w", err)
	}

	return nil, accountToOutput(account), nil
}

type FindAccountInput struct {
	Name string `json:"name" jsonschema:"Exact account name (case-insensitive)"`
}

func (h *AccountHandlers) FindAccount(_ context.Context, request *mcp.CallToolRequest, input FindAccountInput) (*mcp.CallToolResult, AccountOutput, error) {
	if input.Name == "" {
		return nil, AccountOutput{}, fmt.Errorf("name is required")
	}

	account, err := db.FindAccountByName(h.db, input.Name)
	if err != nil {
		return nil, AccountOutput{}, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, AccountOutput{}, fmt.Errorf("account not found: %s", input.Name)
	}

	return nil, accountToOutput(account), nil
}

type ListAccountsOutput struct {
	Accounts []AccountOutput `json:"accounts"`
}

func (h *AccountHandlers) ListAccounts(_ context.Context, request *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListAccountsOutput, error) {
	accounts, err := db.ListAccounts(h.db)
	if err != nil {
		return nil, ListAccountsOutput{}, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]AccountOutput, len(accounts))
	for i, account := range accounts {
		result[i] = accountToOutput(&account)
	}

	return nil, ListAccountsOutput{Accounts: result}, nil
}

type UpdateAccountInput struct {
	AccountID string `json:"account_id" jsonschema:"UUID of the account to update"`
	Name      string `json:"name,omitempty" jsonschema:"Updated account name"`
	Status    string `json:"status,omitempty" jsonschema:"Updated status label"`
	Priority  string `json:"priority,omitempty" jsonschema:"Updated priority"`
}

func (h *AccountHandlers) UpdateAccount(_ context.Context, request *mcp.CallToolRequest, input UpdateAccountInput) (*mcp.CallToolResult, AccountOutput, error) {
	if input.AccountID == "" {
		return nil, AccountOutput{}, fmt.Errorf("account_id is required")
	}

	accountID, err := uuid.Parse(input.AccountID)
	if err != nil {
		return nil, AccountOutput{}, fmt.Errorf("invalid account_id: %w", err)
	}

	account, err := db.GetAccount(h.db, accountID)
	if err != nil {
		return nil, AccountOutput{}, fmt.Errorf("account not found: %w", err)
	}
	if account == nil {
		return nil, AccountOutput{}, fmt.Errorf("account not found: %s", accountID)
	}

	if input.Name != "" {
		account.Name = input.Name
	}
	if input.Status != "" {
		account.Status = input.Status
	}
	if input.Priority != "" {
		account.Priority = input.Priority
	}

	if err := db.UpdateAccount(h.db, accountID, account); err != nil {
		return nil, AccountOutput{}, fmt.Errorf("failed to update account: %w", err)
	}

	return nil, accountToOutput(account), nil
}

type DeleteAccountInput struct {
	AccountID string `json:"account_id" jsonschema:"UUID of the account to delete"`
}

type DeleteAccountOutput struct {
	Message string `json:"message"`
}

func (h *AccountHandlers) DeleteAccount(_ context.Context, request *mcp.CallToolRequest, input DeleteAccountInput) (*mcp.CallToolResult, DeleteAccountOutput, error) {
	if input.AccountID == "" {
		return nil, DeleteAccountOutput{}, fmt.Errorf("account_id is required")
	}

	accountID, err := uuid.Parse(input.AccountID)
	if err != nil {
		return nil, DeleteAccountOutput{}, fmt.Errorf("invalid account_id: %w", err)
	}

	if err := db.DeleteAccount(h.db, accountID); err != nil {
		return nil, DeleteAccountOutput{}, fmt.Errorf("failed to delete account: %w", err)
	}

	return nil, DeleteAccountOutput{
		Message: fmt.Sprintf("Deleted account: %s", accountID),
	}, nil
}

func accountToOutput(account *models.Account) AccountOutput {
	return AccountOutput{
		ID:        account.ID.String(),
		Name:      account.Name,
		Kind:      string(account.Kind),
		Status:    account.Status,
		Priority:  account.Priority,
		Contacts:  len(account.Contacts),
		CreatedAt: account.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: account.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
