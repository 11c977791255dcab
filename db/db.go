package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const dbDriver = "sqlite3"

// DB is the global database connection pool. It only holds state the
// workflow cannot re-derive from the platform: the validation-DM dedup
// window and the upload journal.
var DB *sql.DB

// InitDB opens the SQLite database and creates tables if they don't exist.
func InitDB(source string) {
	var err error
	DB, err = sql.Open(dbDriver, source)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// createTables is defined in migrate.go
	createTables()

	log.Info().Str("source", source).Msg("database connection initialized")
}
