// ABOUTME: Typed store facade over the sqlite layer
// ABOUTME: The narrow per-collection write interface consumed by importer, bulk, and the TUI
package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

// Store bundles the per-collection operations behind one handle so callers
// can hold a single value and tests can swap in fakes via the small
// interfaces each consumer declares.
type Store struct {
	DB *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{DB: database}
}

// Snapshot loads the full account collection with children attached.
func (s *Store) Snapshot() ([]models.Account, error) {
	return ListAccounts(s.DB)
}

func (s *Store) CreateAccount(account *models.Account) error {
	return CreateAccount(s.DB, account)
}

func (s *Store) FindAccountByName(name string) (*models.Account, error) {
	return FindAccountByName(s.DB, name)
}

func (s *Store) UpdateAccount(id uuid.UUID, updates *models.Account) error {
	return UpdateAccount(s.DB, id, updates)
}

func (s *Store) DeleteAccount(id uuid.UUID) error {
	return DeleteAccount(s.DB, id)
}

func (s *Store) CreateContact(accountID uuid.UUID, contact *models.Contact) error {
	return CreateContact(s.DB, accountID, contact)
}

func (s *Store) UpdateContact(id uuid.UUID, updates *models.Contact) error {
	return UpdateContact(s.DB, id, updates)
}

func (s *Store) DeleteContact(id uuid.UUID) error {
	return DeleteContact(s.DB, id)
}

func (s *Store) CreateTask(task *models.Task) error {
	return CreateTask(s.DB, task)
}

func (s *Store) UpdateTask(id uuid.UUID, updates *models.Task) error {
	return UpdateTask(s.DB, id, updates)
}

func (s *Store) DeleteTask(id uuid.UUID) error {
	return DeleteTask(s.DB, id)
}
