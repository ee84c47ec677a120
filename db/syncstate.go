// ABOUTME: Sync state and sync log database operations
// ABOUTME: Tracks per-service sync status, incremental tokens, and imported source ids
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

func GetSyncState(db *sql.DB, service string) (*models.SyncState, error) {
	state := &models.SyncState{}
	var lastSyncTime sql.NullTime
	var lastSyncToken, errorMessage sql.NullString

	err := db.QueryRow(`
		SELECT service, last_sync_time, last_sync_token, status, error_message
		FROM sync_state WHERE service = ?
	`, service).Scan(&state.Service, &lastSyncTime, &lastSyncToken, &state.Status, &errorMessage)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastSyncTime.Valid {
		t := lastSyncTime.Time
		state.LastSyncTime = &t
	}
	if lastSyncToken.Valid {
		state.LastSyncToken = &lastSyncToken.String
	}
	if errorMessage.Valid {
		state.ErrorMessage = &errorMessage.String
	}

	return state, nil
}

func UpdateSyncStatus(db *sql.DB, service, status string, errorMessage *string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (service, status, error_message, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET status = excluded.status, error_message = excluded.error_message, updated_at = CURRENT_TIMESTAMP
	`, service, status, errorMessage)
	return err
}

func UpdateSyncToken(db *sql.DB, service, token string) error {
	_, err := db.Exec(`
		UPDATE sync_state SET last_sync_token = ?, last_sync_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE service = ?
	`, token, time.Now(), service)
	return err
}

// LogSync records that an external source object was imported as an entity,
// so re-running a sync never double-imports it.
func LogSync(db *sql.DB, sourceService, sourceID, entityType, entityID string) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO sync_log (id, source_service, source_id, entity_type, entity_id)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), sourceService, sourceID, entityType, entityID)
	return err
}

func CheckSyncLogExists(db *sql.DB, sourceService, sourceID string) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sync_log WHERE source_service = ? AND source_id = ?
	`, sourceService, sourceID).Scan(&count)
	return count > 0, err
}
