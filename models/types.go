// ABOUTME: Data models for workspace entities
// ABOUTME: Defines Account (investor/customer/partner variants), Contact, Task, Meeting, Note
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountKind discriminates the Account variant payload.
type AccountKind string

const (
	KindInvestor AccountKind = "investor"
	KindCustomer AccountKind = "customer"
	KindPartner  AccountKind = "partner"
)

// Priority levels shared by accounts and tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task status constants.
const (
	TaskTodo = "todo"
	TaskDone = "done"
)

// InvestorFields is the variant payload for investor accounts.
type InvestorFields struct {
	CheckSize int64  `json:"check_size,omitempty"` // in cents
	Stage     string `json:"stage,omitempty"`
}

// CustomerFields is the variant payload for customer accounts.
type CustomerFields struct {
	DealValue int64  `json:"deal_value,omitempty"` // in cents
	DealStage string `json:"deal_stage,omitempty"`
}

// PartnerFields is the variant payload for partner accounts.
type PartnerFields struct {
	Opportunity string `json:"opportunity,omitempty"`
	PartnerType string `json:"partner_type,omitempty"`
}

// Account is a company-level record. Exactly one of Investor, Customer or
// Partner is non-nil, matching Kind.
type Account struct {
	ID             uuid.UUID   `json:"id"`
	Kind           AccountKind `json:"kind"`
	Name           string      `json:"name"`
	Status         string      `json:"status,omitempty"`
	Priority       string      `json:"priority,omitempty"`
	NextAction     string      `json:"next_action,omitempty"`
	NextActionDate *time.Time  `json:"next_action_date,omitempty"`
	NextActionTime string      `json:"next_action_time,omitempty"`
	AssigneeID     *uuid.UUID  `json:"assignee_id,omitempty"`
	AssigneeName   string      `json:"assignee_name,omitempty"`

	Investor *InvestorFields `json:"investor,omitempty"`
	Customer *CustomerFields `json:"customer,omitempty"`
	Partner  *PartnerFields  `json:"partner,omitempty"`

	Contacts []Contact `json:"contacts,omitempty"`
	Notes    []Note    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that exactly one variant payload is set and that it
// matches Kind.
func (a *Account) Validate() error {
	set := 0
	if a.Investor != nil {
		set++
	}
	if a.Customer != nil {
		set++
	}
	if a.Partner != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("account %q: expected exactly one variant payload, got %d", a.Name, set)
	}

	switch a.Kind {
	case KindInvestor:
		if a.Investor == nil {
			return fmt.Errorf("account %q: kind investor without investor payload", a.Name)
		}
	case KindCustomer:
		if a.Customer == nil {
			return fmt.Errorf("account %q: kind customer without customer payload", a.Name)
		}
	case KindPartner:
		if a.Partner == nil {
			return fmt.Errorf("account %q: kind partner without partner payload", a.Name)
		}
	default:
		return fmt.Errorf("account %q: unknown kind %q", a.Name, a.Kind)
	}

	return nil
}

type Contact struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Title     string    `json:"title,omitempty"`

	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`

	Meetings []Meeting `json:"meetings,omitempty"`
	Notes    []Note    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task references accounts and contacts by id only. The references are
// re-resolved against every snapshot, never cached by identity.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Priority  string     `json:"priority,omitempty"`
	Status    string     `json:"status"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`

	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`

	DueDate *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Meeting struct {
	ID        string    `json:"id"` // ULID
	ContactID uuid.UUID `json:"contact_id"`
	Title     string    `json:"title"`
	Attendees []string  `json:"attendees,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Note struct {
	ID        string    `json:"id"` // ULID
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Sync status constants.
const (
	SyncStatusIdle    = "idle"
	SyncStatusSyncing = "syncing"
	SyncStatusError   = "error"
)

type SyncState struct {
	Service       string     `json:"service"`
	LastSyncTime  *time.Time `json:"last_sync_time,omitempty"`
	LastSyncToken *string    `json:"last_sync_token,omitempty"`
	Status        string     `json:"status"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
}
