// ABOUTME: Account database operations
// ABOUTME: Handles CRUD, name lookups, cascade deletes, and snapshot loading
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

const accountColumns = `id, kind, name, status, priority, next_action, next_action_date, next_action_time,
	assignee_id, assignee_name, check_size, stage, deal_value, deal_stage, opportunity, partner_type,
	created_at, updated_at`

func CreateAccount(db *sql.DB, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	account.ID = uuid.New()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	var checkSize, dealValue sql.NullInt64
	var stage, dealStage, opportunity, partnerType sql.NullString
	switch account.Kind {
	case models.KindInvestor:
		checkSize = sql.NullInt64{Int64: account.Investor.CheckSize, Valid: true}
		stage = sql.NullString{String: account.Investor.Stage, Valid: true}
	case models.KindCustomer:
		dealValue = sql.NullInt64{Int64: account.Customer.DealValue, Valid: true}
		dealStage = sql.NullString{String: account.Customer.DealStage, Valid: true}
	case models.KindPartner:
		opportunity = sql.NullString{String: account.Partner.Opportunity, Valid: true}
		partnerType = sql.NullString{String: account.Partner.PartnerType, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO accounts (id, kind, name, status, priority, next_action, next_action_date, next_action_time,
			assignee_id, assignee_name, check_size, stage, deal_value, deal_stage, opportunity, partner_type,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, account.ID.String(), string(account.Kind), account.Name, account.Status, account.Priority,
		account.NextAction, account.NextActionDate, account.NextActionTime,
		uuidPtrString(account.AssigneeID), account.AssigneeName,
		checkSize, stage, dealValue, dealStage, opportunity, partnerType,
		account.CreatedAt, account.UpdatedAt)

	return err
}

func GetAccount(db *sql.DB, id uuid.UUID) (*models.Account, error) {
	row := db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id.String())
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return account, err
}

// FindAccountByName returns the account with an exact case-insensitive name
// match, or nil if none exists.
func FindAccountByName(db *sql.DB, name string) (*models.Account, error) {
	row := db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE LOWER(name) = LOWER(?)`, name)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return account, err
}

// ListAccounts loads the full account collection with contacts (and their
// meetings) and notes attached, in creation order. This is the snapshot the
// reconciler and the duplicate detector work from.
func ListAccounts(db *sql.DB) ([]models.Account, error) {
	rows, err := db.Query(`SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range accounts {
		contacts, err := ListContactsForAccount(db, accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accounts[i].Contacts = contacts

		notes, err := ListAccountNotes(db, accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accounts[i].Notes = notes
	}

	return accounts, nil
}

func UpdateAccount(db *sql.DB, id uuid.UUID, updates *models.Account) error {
	if err := updates.Validate(); err != nil {
		return err
	}

	updates.UpdatedAt = time.Now()

	var checkSize, dealValue sql.NullInt64
	var stage, dealStage, opportunity, partnerType sql.NullString
	switch updates.Kind {
	case models.KindInvestor:
		checkSize = sql.NullInt64{Int64: updates.Investor.CheckSize, Valid: true}
		stage = sql.NullString{String: updates.Investor.Stage, Valid: true}
	case models.KindCustomer:
		dealValue = sql.NullInt64{Int64: updates.Customer.DealValue, Valid: true}
		dealStage = sql.NullString{String: updates.Customer.DealStage, Valid: true}
	case models.KindPartner:
		opportunity = sql.NullString{String: updates.Partner.Opportunity, Valid: true}
		partnerType = sql.NullString{String: updates.Partner.PartnerType, Valid: true}
	}

	_, err := db.Exec(`
		UPDATE accounts
		SET kind = ?, name = ?, status = ?, priority = ?, next_action = ?, next_action_date = ?,
			next_action_time = ?, assignee_id = ?, assignee_name = ?,
			check_size = ?, stage = ?, deal_value = ?, deal_stage = ?, opportunity = ?, partner_type = ?,
			updated_at = ?
		WHERE id = ?
	`, string(updates.Kind), updates.Name, updates.Status, updates.Priority, updates.NextAction,
		updates.NextActionDate, updates.NextActionTime,
		uuidPtrString(updates.AssigneeID), updates.AssigneeName,
		checkSize, stage, dealValue, dealStage, opportunity, partnerType,
		updates.UpdatedAt, id.String())

	return err
}

// DeleteAccount removes an account and everything it owns: contacts, their
// meetings, and notes. Task references are weak, so they are nulled, not
// deleted.
func DeleteAccount(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.Exec(`DELETE FROM meetings WHERE contact_id IN (SELECT id FROM contacts WHERE account_id = ?)`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete meetings: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM notes WHERE account_id = ? OR contact_id IN (SELECT id FROM contacts WHERE account_id = ?)`,
		id.String(), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM contacts WHERE account_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete contacts: %w", err)
	}

	_, err = tx.Exec(`UPDATE tasks SET account_id = NULL, contact_id = NULL WHERE account_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to update tasks: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM accounts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	account := &models.Account{}
	var kind string
	var status, priority, nextAction, nextActionTime, assigneeName sql.NullString
	var nextActionDate sql.NullTime
	var assigneeID sql.NullString
	var checkSize, dealValue sql.NullInt64
	var stage, dealStage, opportunity, partnerType sql.NullString

	err := row.Scan(
		&account.ID,
		&kind,
		&account.Name,
		&status,
		&priority,
		&nextAction,
		&nextActionDate,
		&nextActionTime,
		&assigneeID,
		&assigneeName,
		&checkSize,
		&stage,
		&dealValue,
		&dealStage,
		&opportunity,
		&partnerType,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Kind = models.AccountKind(kind)
	account.Status = status.String
	account.Priority = priority.String
	account.NextAction = nextAction.String
	account.NextActionTime = nextActionTime.String
	account.AssigneeName = assigneeName.String
	if nextActionDate.Valid {
		t := nextActionDate.Time
		account.NextActionDate = &t
	}
	if assigneeID.Valid {
		if aid, err := uuid.Parse(assigneeID.String); err == nil {
			account.AssigneeID = &aid
		}
	}

	// Storage keeps the variant columns flat; rebuild the tagged union here.
	switch account.Kind {
	case models.KindInvestor:
		account.Investor = &models.InvestorFields{CheckSize: checkSize.Int64, Stage: stage.String}
	case models.KindCustomer:
		account.Customer = &models.CustomerFields{DealValue: dealValue.Int64, DealStage: dealStage.String}
	case models.KindPartner:
		account.Partner = &models.PartnerFields{Opportunity: opportunity.String, PartnerType: partnerType.String}
	}

	return account, nil
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
