package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. driver is either
// "postgres" or "sqlite3"; dsn is the postgres URL or the sqlite file
// path (":memory:" is accepted for tests).
func Connect(driver, dsn string) error {
	if driver == "sqlite3" && dsn != ":memory:" {
		// Create the data directory for a file-backed database
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		// One connection reused across requests, no pooling
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "SERIAL"
	if DB.DriverName() == "sqlite3" {
		serial = "INTEGER"
	}

	_, err := DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			word_id %s PRIMARY KEY,
			word VARCHAR(40) UNIQUE NOT NULL,
			translation VARCHAR(40) NOT NULL,
			definition VARCHAR(900)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create words table: %w", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS words_to_users (
			word_id INTEGER NOT NULL REFERENCES words(word_id),
			user_id BIGINT NOT NULL REFERENCES users(user_id),
			learn_counter INTEGER NOT NULL,
			CONSTRAINT pk_word_user PRIMARY KEY (word_id, user_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words_to_users table: %w", err)
	}

	return nil
}
