// ABOUTME: Task database operations
// ABOUTME: Tasks reference accounts and contacts weakly by id
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

func CreateTask(db *sql.DB, task *models.Task) error {
	task.ID = uuid.New()
	if task.Status == "" {
		task.Status = models.TaskTodo
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO tasks (id, text, priority, status, account_id, contact_id, assignee_id, assignee_name, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.Text, task.Priority, task.Status,
		uuidPtrString(task.AccountID), uuidPtrString(task.ContactID),
		uuidPtrString(task.AssigneeID), task.AssigneeName, task.DueDate, task.CreatedAt, task.UpdatedAt)

	return err
}

func GetTask(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	row := db.QueryRow(`
		SELECT id, text, priority, status, account_id, contact_id, assignee_id, assignee_name, due_date, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id.String())

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

// ListTasks returns tasks, optionally filtered to one account. Status "" means
// all statuses.
func ListTasks(db *sql.DB, accountID *uuid.UUID, status string) ([]models.Task, error) {
	query := `
		SELECT id, text, priority, status, account_id, contact_id, assignee_id, assignee_name, due_date, created_at, updated_at
		FROM tasks`
	var args []interface{}
	var where []string

	if accountID != nil {
		where = append(where, "account_id = ?")
		args = append(args, accountID.String())
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

func UpdateTask(db *sql.DB, id uuid.UUID, updates *models.Task) error {
	updates.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE tasks
		SET text = ?, priority = ?, status = ?, account_id = ?, contact_id = ?, assignee_id = ?, assignee_name = ?, due_date = ?, updated_at = ?
		WHERE id = ?
	`, updates.Text, updates.Priority, updates.Status,
		uuidPtrString(updates.AccountID), uuidPtrString(updates.ContactID),
		uuidPtrString(updates.AssigneeID), updates.AssigneeName, updates.DueDate, updates.UpdatedAt, id.String())

	return err
}

func DeleteTask(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var priority, assigneeName sql.NullString
	var accountID, contactID, assigneeID sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Text,
		&priority,
		&task.Status,
		&accountID,
		&contactID,
		&assigneeID,
		&assigneeName,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = priority.String
	task.AssigneeName = assigneeName.String
	if accountID.Valid {
		if aid, err := uuid.Parse(accountID.String); err == nil {
			task.AccountID = &aid
		}
	}
	if contactID.Valid {
		if cid, err := uuid.Parse(contactID.String); err == nil {
			task.ContactID = &cid
		}
	}
	if assigneeID.Valid {
		if aid, err := uuid.Parse(assigneeID.String); err == nil {
			task.AssigneeID = &aid
		}
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}

	return task, nil
}
