// ABOUTME: Workspace backup over Charm KV
// ABOUTME: Pushes self-contained account payloads so another device can restore them independently
package sync

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/rolo/charm"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// AccountPayload is a self-contained snapshot of an account and its contacts.
// Denormalized so a device can restore it without any other key present.
type AccountPayload struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`

	CheckSize   int64  `json:"check_size,omitempty"`
	Stage       string `json:"stage,omitempty"`
	DealValue   int64  `json:"deal_value,omitempty"`
	DealStage   string `json:"deal_stage,omitempty"`
	Opportunity string `json:"opportunity,omitempty"`
	PartnerType string `json:"partner_type,omitempty"`

	Contacts []ContactPayload `json:"contacts,omitempty"`

	BackedUpAt string `json:"backed_up_at"`
}

// ContactPayload carries a contact inside its account payload.
type ContactPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Title string `json:"title,omitempty"`
}

// accountToPayload flattens the account variant into the payload.
func accountToPayload(account *models.Account, now time.Time) AccountPayload {
	payload := AccountPayload{
		ID:         account.ID.String(),
		Kind:       string(account.Kind),
		Name:       account.Name,
		Status:     account.Status,
		Priority:   account.Priority,
		BackedUpAt: now.UTC().Format(time.RFC3339),
	}

	switch {
	case account.Investor != nil:
		payload.CheckSize = account.Investor.CheckSize
		payload.Stage = account.Investor.Stage
	case account.Customer != nil:
		payload.DealValue = account.Customer.DealValue
		payload.DealStage = account.Customer.DealStage
	case account.Partner != nil:
		payload.Opportunity = account.Partner.Opportunity
		payload.PartnerType = account.Partner.PartnerType
	}

	for _, contact := range account.Contacts {
		payload.Contacts = append(payload.Contacts, ContactPayload{
			ID:    contact.ID.String(),
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
			Title: contact.Title,
		})
	}

	return payload
}

// BackupAccounts pushes every account to the Charm KV store and prunes
// payloads for accounts that no longer exist locally, so a later restore
// cannot resurrect them.
func BackupAccounts(database *sql.DB, client *charm.Client) (int, error) {
	accounts, err := db.ListAccounts(database)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	now := time.Now()
	pushed := 0
	live := make(map[string]bool, len(accounts))
	for i := range accounts {
		payload := accountToPayload(&accounts[i], now)
		live[payload.ID] = true

		data, err := json.Marshal(payload)
		if err != nil {
			return pushed, fmt.Errorf("failed to encode account %s: %w", payload.ID, err)
		}

		key := []byte(charm.AccountKeyPrefix + payload.ID)
		if err := client.Set(key, data); err != nil {
			return pushed, fmt.Errorf("failed to push account %s: %w", payload.ID, err)
		}
		pushed++
	}

	keys, err := client.KeysWithPrefix([]byte(charm.AccountKeyPrefix))
	if err != nil {
		return pushed, fmt.Errorf("failed to list backup keys: %w", err)
	}
	for _, key := range keys {
		id := string(key[len(charm.AccountKeyPrefix):])
		if live[id] {
			continue
		}
		if err := client.Delete(key); err != nil {
			return pushed, fmt.Errorf("failed to prune stale backup %s: %w", key, err)
		}
	}

	return pushed, nil
}

// RestoreAccounts pulls account payloads from Charm KV and recreates any
// account that is not already present locally. Existing accounts, matched by
// name, are left untouched.
func RestoreAccounts(database *sql.DB, client *charm.Client) (int, error) {
	if err := client.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync kv store: %w", err)
	}

	keys, err := client.KeysWithPrefix([]byte(charm.AccountKeyPrefix))
	if err != nil {
		return 0, fmt.Errorf("failed to list backup keys: %w", err)
	}

	restored := 0
	for _, key := range keys {
		data, err := client.Get(key)
		if err != nil {
			return restored, fmt.Errorf("failed to get %s: %w", key, err)
		}

		var payload AccountPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return restored, fmt.Errorf("failed to decode %s: %w", key, err)
		}

		existing, err := db.FindAccountByName(database, payload.Name)
		if err != nil {
			return restored, err
		}
		if existing != nil {
			continue
		}

		account := payloadToAccount(&payload)
		if err := db.CreateAccount(database, account); err != nil {
			return restored, fmt.Errorf("failed to restore account %s: %w", payload.Name, err)
		}

		for _, c := range payload.Contacts {
			contact := &models.Contact{
				Name:  c.Name,
				Email: c.Email,
				Phone: c.Phone,
				Title: c.Title,
			}
			if err := db.CreateContact(database, account.ID, contact); err != nil {
				return restored, fmt.Errorf("failed to restore contact %s: %w", c.Name, err)
			}
		}

		restored++
	}

	return restored, nil
}

// payloadToAccount rebuilds the tagged account from flat payload fields.
func payloadToAccount(payload *AccountPayload) *models.Account {
	account := &models.Account{
		Kind:     models.AccountKind(payload.Kind),
		Name:     payload.Name,
		Status:   payload.Status,
		Priority: payload.Priority,
	}

	switch account.Kind {
	case models.KindInvestor:
		account.Investor = &models.InvestorFields{CheckSize: payload.CheckSize, Stage: payload.Stage}
	case models.KindCustomer:
		account.Customer = &models.CustomerFields{DealValue: payload.DealValue, DealStage: payload.DealStage}
	case models.KindPartner:
		account.Partner = &models.PartnerFields{Opportunity: payload.Opportunity, PartnerType: payload.PartnerType}
	}

	return account
}
