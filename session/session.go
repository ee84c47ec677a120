// ABOUTME: Selection state reconciliation against collection snapshots
// ABOUTME: Refreshes, clears, or holds the open detail view as the collection mutates
package session

import (
	"time"

	"github.com/harperreed/rolo/models"
)

// NoticeTTL is how long a transient notice stays visible before it
// self-dismisses.
const NoticeTTL = 3 * time.Second

// Notice is the only observable signal of an automatic selection clear; no
// error is surfaced to any caller.
type Notice struct {
	Message  string
	RaisedAt time.Time
}

// Session holds the ephemeral per-user selection state: which account and
// contact the open detail view shows, the mutation guard, and the pending
// transient notice. It owns no copy of the collection; the held pointers are
// replaced wholesale on every reconciliation pass.
type Session struct {
	Guard Guard

	selectedAccount *models.Account
	selectedContact *models.Contact

	notice *Notice
	now    func() time.Time
}

func New() *Session {
	return &Session{now: time.Now}
}

// SelectAccount opens an account in the detail view, dropping any contact
// selection from a previous account.
func (s *Session) SelectAccount(account *models.Account) {
	s.selectedAccount = account
	s.selectedContact = nil
}

// SelectContact opens a contact within the currently selected account.
func (s *Session) SelectContact(contact *models.Contact) {
	s.selectedContact = contact
}

// ClearSelection drops both selections without raising a notice. Used when
// the user closes the detail view themselves.
func (s *Session) ClearSelection() {
	s.selectedAccount = nil
	s.selectedContact = nil
}

func (s *Session) SelectedAccount() *models.Account { return s.selectedAccount }
func (s *Session) SelectedContact() *models.Contact { return s.selectedContact }

// ApplySnapshot reconciles the selection against a new collection snapshot.
//
// If the guard is armed the change is our own write echoing back: skip the
// pass entirely and clear the flag. Otherwise resolve the selected ids
// against the snapshot, replacing held objects in place so displayed fields
// are never stale, and clearing whatever no longer resolves. A contact whose
// parent changed is treated as gone from this view even though it still
// exists, because it now belongs to a different account's detail view.
func (s *Session) ApplySnapshot(accounts []models.Account) {
	if s.Guard.Consume() {
		return
	}

	if s.selectedAccount == nil {
		return
	}

	idx := BuildIndex(accounts)

	fresh := idx.Account(s.selectedAccount.ID)
	if fresh == nil {
		s.selectedAccount = nil
		s.selectedContact = nil
		s.raiseNotice("This item was deleted")
		return
	}
	s.selectedAccount = fresh

	if s.selectedContact == nil {
		return
	}

	ref, ok := idx.Contact(s.selectedContact.ID)
	if !ok || ref.Account.ID != s.selectedAccount.ID {
		s.selectedContact = nil
		s.raiseNotice("This item was deleted")
		return
	}
	s.selectedContact = ref.Contact
}

func (s *Session) raiseNotice(message string) {
	s.notice = &Notice{Message: message, RaisedAt: s.now()}
}

// ActiveNotice returns the pending notice, or nil once it has expired or
// been dismissed.
func (s *Session) ActiveNotice() *Notice {
	if s.notice == nil {
		return nil
	}
	if s.now().Sub(s.notice.RaisedAt) >= NoticeTTL {
		s.notice = nil
		return nil
	}
	return s.notice
}

// DismissNotice clears the notice early, before its TTL elapses.
func (s *Session) DismissNotice() {
	s.notice = nil
}
