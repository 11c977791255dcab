package db

import (
	"time"
)

// RecordUpload journals an upload attempt. The journal is write-only from
// the workflow's point of view: decisions are always made from live platform
// state, never from these rows.
func RecordUpload(mapName, userID string, status int) error {
	_, err := DB.Exec(`
		INSERT INTO uploads (map_name, user_id, status, created_at)
		VALUES (?, ?, ?, ?)
	`, mapName, userID, status, time.Now().Unix())
	return err
}
