// ABOUTME: Contact and meeting database operations
// ABOUTME: Contacts are always scoped to a parent account; meetings to a contact
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/rolo/models"
)

func CreateContact(db *sql.DB, accountID uuid.UUID, contact *models.Contact) error {
	contact.ID = uuid.New()
	contact.AccountID = accountID
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO contacts (id, account_id, name, email, phone, title, assignee_id, assignee_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), accountID.String(), contact.Name, contact.Email, contact.Phone, contact.Title,
		uuidPtrString(contact.AssigneeID), contact.AssigneeName, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	row := db.QueryRow(`
		SELECT id, account_id, name, email, phone, title, assignee_id, assignee_name, created_at, updated_at
		FROM contacts WHERE id = ?
	`, id.String())

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return contact, err
}

func FindContactByEmail(db *sql.DB, email string) (*models.Contact, error) {
	row := db.QueryRow(`
		SELECT id, account_id, name, email, phone, title, assignee_id, assignee_name, created_at, updated_at
		FROM contacts WHERE LOWER(email) = LOWER(?)
	`, strings.TrimSpace(email))

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return contact, err
}

func ListContactsForAccount(db *sql.DB, accountID uuid.UUID) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT id, account_id, name, email, phone, title, assignee_id, assignee_name, created_at, updated_at
		FROM contacts
		WHERE account_id = ?
		ORDER BY created_at
	`, accountID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range contacts {
		meetings, err := ListMeetingsForContact(db, contacts[i].ID)
		if err != nil {
			return nil, err
		}
		contacts[i].Meetings = meetings

		notes, err := ListContactNotes(db, contacts[i].ID)
		if err != nil {
			return nil, err
		}
		contacts[i].Notes = notes
	}

	return contacts, nil
}

func UpdateContact(db *sql.DB, id uuid.UUID, updates *models.Contact) error {
	updates.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE contacts
		SET account_id = ?, name = ?, email = ?, phone = ?, title = ?, assignee_id = ?, assignee_name = ?, updated_at = ?
		WHERE id = ?
	`, updates.AccountID.String(), updates.Name, updates.Email, updates.Phone, updates.Title,
		uuidPtrString(updates.AssigneeID), updates.AssigneeName, updates.UpdatedAt, id.String())

	return err
}

// DeleteContact removes a contact and its meetings and notes, and nulls any
// task references to it.
func DeleteContact(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.Exec(`DELETE FROM meetings WHERE contact_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete meetings: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM notes WHERE contact_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}

	_, err = tx.Exec(`UPDATE tasks SET contact_id = NULL WHERE contact_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to update tasks: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM contacts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return tx.Commit()
}

func CreateMeeting(db *sql.DB, contactID uuid.UUID, meeting *models.Meeting) error {
	if meeting.ID == "" {
		meeting.ID = ulid.Make().String()
	}
	meeting.ContactID = contactID
	if meeting.Timestamp.IsZero() {
		meeting.Timestamp = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO meetings (id, contact_id, title, attendees, summary, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, meeting.ID, contactID.String(), meeting.Title, strings.Join(meeting.Attendees, ","), meeting.Summary, meeting.Timestamp)

	return err
}

func ListMeetingsForContact(db *sql.DB, contactID uuid.UUID) ([]models.Meeting, error) {
	rows, err := db.Query(`
		SELECT id, contact_id, title, attendees, summary, timestamp
		FROM meetings
		WHERE contact_id = ?
		ORDER BY timestamp
	`, contactID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		var attendees sql.NullString
		if err := rows.Scan(&m.ID, &m.ContactID, &m.Title, &attendees, &m.Summary, &m.Timestamp); err != nil {
			return nil, err
		}
		if attendees.String != "" {
			m.Attendees = strings.Split(attendees.String, ",")
		}
		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}

func scanContact(row rowScanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var email, phone, title, assigneeName sql.NullString
	var assigneeID sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.AccountID,
		&contact.Name,
		&email,
		&phone,
		&title,
		&assigneeID,
		&assigneeName,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.Email = email.String
	contact.Phone = phone.String
	contact.Title = title.String
	contact.AssigneeName = assigneeName.String
	if assigneeID.Valid {
		if aid, err := uuid.Parse(assigneeID.String); err == nil {
			contact.AssigneeID = &aid
		}
	}

	return contact, nil
}
