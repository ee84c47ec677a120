// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contact, update_contact and log_meeting tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

type AddContactInput struct {
	AccountID string `json:"account_id,omitempty" jsonschema:"UUID of the parent account"`
	Account   string `json:"account,omitempty" jsonschema:"Parent account name, used when account_id is omitted"`
	Name      string `json:"name" jsonschema:"Contact name (required)"`
	Email     string `json:"email,omitempty" jsonschema:"Email address"`
	Phone     string `json:"phone,omitempty" jsonschema:"Phone number"`
	Title     string `json:"title,omitempty" jsonschema:"Job title"`
}

type ContactOutput struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	accountID, err := h.resolveAccount(input.AccountID, input.Account)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	contact := &models.Contact{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Title: input.Title,
	}

	if err := db.CreateContact(h.db, accountID, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactInput struct {
	Email string `json:"email" jsonschema:"Email address to look up"`
}

func (h *ContactHandlers) FindContact(_ context.Context, request *mcp.CallToolRequest, input FindContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Email == "" {
		return nil, ContactOutput{}, fmt.Errorf("email is required")
	}

	contact, err := db.FindContactByEmail(h.db, input.Email)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to find contact: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.Email)
	}

	return nil, contactToOutput(contact), nil
}

type UpdateContactInput struct {
	ContactID string `json:"contact_id" jsonschema:"UUID of the contact to update"`
	Name      string `json:"name,omitempty" jsonschema:"Updated name"`
	Email     string `json:"email,omitempty" jsonschema:"Updated email"`
	Phone     string `json:"phone,omitempty" jsonschema:"Updated phone"`
	Title     string `json:"title,omitempty" jsonschema:"Updated title"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	contact, err := db.GetContact(h.db, contactID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", contactID)
	}

	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Title != "" {
		contact.Title = input.Title
	}

	if err := db.UpdateContact(h.db, contactID, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type LogMeetingInput struct {
	ContactID string   `json:"contact_id" jsonschema:"UUID of the contact met with"`
	Title     string   `json:"title" jsonschema:"Meeting title (required)"`
	Summary   string   `json:"summary,omitempty" jsonschema:"Meeting summary"`
	Attendees []string `json:"attendees,omitempty" jsonschema:"Attendee names or emails"`
	Timestamp string   `json:"timestamp,omitempty" jsonschema:"RFC3339 timestamp, defaults to now"`
}

type LogMeetingOutput struct {
	MeetingID string `json:"meeting_id"`
	Message   string `json:"message"`
}

func (h *ContactHandlers) LogMeeting(_ context.Context, request *mcp.CallToolRequest, input LogMeetingInput) (*mcp.CallToolResult, LogMeetingOutput, error) {
	if input.ContactID == "" {
		return nil, LogMeetingOutput{}, fmt.Errorf("contact_id is required")
	}
	if input.Title == "" {
		return nil, LogMeetingOutput{}, fmt.Errorf("title is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, LogMeetingOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	timestamp := time.Now()
	if input.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, input.Timestamp)
		if err != nil {
			return nil, LogMeetingOutput{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		timestamp = parsed
	}

	meeting := &models.Meeting{
		Title:     input.Title,
		Summary:   input.Summary,
		Attendees: input.Attendees,
		Timestamp: timestamp,
	}

	if err := db.CreateMeeting(h.db, contactID, meeting); err != nil {
		return nil, LogMeetingOutput{}, fmt.Errorf("failed to log meeting: %w", err)
	}

	return nil, LogMeetingOutput{
		MeetingID: meeting.ID,
		Message:   fmt.Sprintf("Logged meeting %q with contact %s", input.Title, contactID),
	}, nil
}

// resolveAccount resolves a parent account from an explicit id or a name.
func (h *ContactHandlers) resolveAccount(idStr, name string) (uuid.UUID, error) {
	if idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid account_id: %w", err)
		}
		return id, nil
	}
	if name == "" {
		return uuid.Nil, fmt.Errorf("account_id or account is required")
	}
	account, err := db.FindAccountByName(h.db, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return uuid.Nil, fmt.Errorf("account not found: %s", name)
	}
	return account.ID, nil
}

func contactToOutput(contact *models.Contact) ContactOutput {
	return ContactOutput{
		ID:        contact.ID.String(),
		AccountID: contact.AccountID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Title:     contact.Title,
		CreatedAt: contact.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
