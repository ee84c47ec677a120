// ABOUTME: Note database operations
// ABOUTME: Notes attach to either an account or a contact, ordered by creation
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/rolo/models"
)

func AddAccountNote(db *sql.DB, accountID uuid.UUID, note *models.Note) error {
	return insertNote(db, &accountID, nil, note)
}

func AddContactNote(db *sql.DB, contactID uuid.UUID, note *models.Note) error {
	return insertNote(db, nil, &contactID, note)
}

func insertNote(db *sql.DB, accountID, contactID *uuid.UUID, note *models.Note) error {
	if note.ID == "" {
		note.ID = ulid.Make().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO notes (id, account_id, contact_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, uuidPtrString(accountID), uuidPtrString(contactID), note.Body, note.CreatedAt)

	return err
}

func ListAccountNotes(db *sql.DB, accountID uuid.UUID) ([]models.Note, error) {
	return listNotes(db, `SELECT id, body, created_at FROM notes WHERE account_id = ? ORDER BY created_at`, accountID.String())
}

func ListContactNotes(db *sql.DB, contactID uuid.UUID) ([]models.Note, error) {
	return listNotes(db, `SELECT id, body, created_at FROM notes WHERE contact_id = ? ORDER BY created_at`, contactID.String())
}

func listNotes(db *sql.DB, query string, arg string) ([]models.Note, error) {
	rows, err := db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

func DeleteNote(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
