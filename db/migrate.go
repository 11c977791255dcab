package db

import (
	"github.com/rs/zerolog/log"
)

// createTables creates the required tables if they are missing.
func createTables() {
	createNotificationsTableSQL := `
	CREATE TABLE IF NOT EXISTS notifications (
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		sent_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, reason)
	);`

	_, err := DB.Exec(createNotificationsTableSQL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create notifications table")
	}

	createUploadsTableSQL := `
	CREATE TABLE IF NOT EXISTS uploads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		map_name TEXT NOT NULL,
		user_id TEXT NOT NULL,
		status INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`

	_, err = DB.Exec(createUploadsTableSQL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create uploads table")
	}

	log.Info().Msg("database tables initialized")
}
