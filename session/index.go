// ABOUTME: Lookup index over a collection snapshot
// ABOUTME: O(1) id lookups for accounts and for contacts with their parent account
package session

import (
	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

// ContactRef pairs a contact with the account that owns it in the snapshot
// the index was built from.
type ContactRef struct {
	Contact *models.Contact
	Account *models.Account
}

// Index maps entity ids to entities for one collection snapshot. It is built
// in a single pass and never mutated afterwards; every new snapshot gets a
// fresh index rather than an incremental patch.
type Index struct {
	Accounts map[uuid.UUID]*models.Account
	Contacts map[uuid.UUID]ContactRef
}

// BuildIndex indexes the given snapshot. The returned index holds pointers
// into the snapshot slice, so the slice must not be reordered while the index
// is in use.
func BuildIndex(accounts []models.Account) *Index {
	idx := &Index{
		Accounts: make(map[uuid.UUID]*models.Account, len(accounts)),
		Contacts: make(map[uuid.UUID]ContactRef),
	}

	for i := range accounts {
		account := &accounts[i]
		idx.Accounts[account.ID] = account
		for j := range account.Contacts {
			contact := &account.Contacts[j]
			idx.Contacts[contact.ID] = ContactRef{Contact: contact, Account: account}
		}
	}

	return idx
}

// Account resolves an account id, returning nil if it is not in the snapshot.
func (idx *Index) Account(id uuid.UUID) *models.Account {
	return idx.Accounts[id]
}

// Contact resolves a contact id to the contact and its parent account.
func (idx *Index) Contact(id uuid.UUID) (ContactRef, bool) {
	ref, ok := idx.Contacts[id]
	return ref, ok
}
