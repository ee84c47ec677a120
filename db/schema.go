// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL CHECK(kind IN ('investor', 'customer', 'partner')),
	name TEXT NOT NULL,
	status TEXT,
	priority TEXT CHECK(priority IN ('low', 'medium', 'high') OR priority IS NULL),
	next_action TEXT,
	next_action_date DATETIME,
	next_action_time TEXT,
	assignee_id TEXT,
	assignee_name TEXT,
	check_size INTEGER,
	stage TEXT,
	deal_value INTEGER,
	deal_stage TEXT,
	opportunity TEXT,
	partner_type TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_name ON accounts(name);
CREATE INDEX IF NOT EXISTS idx_accounts_kind ON accounts(kind);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	title TEXT,
	assignee_id TEXT,
	assignee_name TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_account_id ON contacts(account_id);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	priority TEXT CHECK(priority IN ('low', 'medium', 'high') OR priority IS NULL),
	status TEXT NOT NULL CHECK(status IN ('todo', 'done')),
	account_id TEXT,
	contact_id TEXT,
	assignee_id TEXT,
	assignee_name TEXT,
	due_date DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_account_id ON tasks(account_id);

CREATE TABLE IF NOT EXISTS meetings (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	title TEXT NOT NULL,
	attendees TEXT,
	summary TEXT,
	timestamp DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_meetings_contact_id ON meetings(contact_id);
CREATE INDEX IF NOT EXISTS idx_meetings_timestamp ON meetings(timestamp DESC);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	account_id TEXT,
	contact_id TEXT,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_account_id ON notes(account_id);
CREATE INDEX IF NOT EXISTS idx_notes_contact_id ON notes(contact_id);

CREATE TABLE IF NOT EXISTS sync_state (
	service TEXT PRIMARY KEY,
	last_sync_time DATETIME,
	last_sync_token TEXT,
	status TEXT CHECK(status IN ('idle', 'syncing', 'error')),
	error_message TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_log (
	id TEXT PRIMARY KEY,
	source_service TEXT NOT NULL,
	source_id TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(source_service, source_id)
);

CREATE INDEX IF NOT EXISTS idx_sync_log_source ON sync_log(source_service, source_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
