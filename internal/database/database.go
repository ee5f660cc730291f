// Package database is the SQLite persistence layer. Rows use string UUID
// identifiers; every lookup that can miss returns (nil, nil) rather than an
// error, matching the document-store contract the services are written
// against.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"estudio/internal/logging"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{db: db, log: logging.Component(logger, "database")}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            id TEXT PRIMARY KEY,
            full_name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            monthly_hours_limit INTEGER NOT NULL DEFAULT 10,
            daily_hours_limit INTEGER NOT NULL DEFAULT 4,
            hours_used_this_month REAL NOT NULL DEFAULT 0,
            hours_reset_date DATETIME,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS user_roles (
            user_id TEXT PRIMARY KEY,
            role TEXT NOT NULL DEFAULT 'member'
        )`,

		`CREATE TABLE IF NOT EXISTS schedule_bookings (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            start_time DATETIME NOT NULL,
            end_time DATETIME NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS artists (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            genre TEXT NOT NULL DEFAULT '',
            bio TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            instagram_url TEXT NOT NULL DEFAULT '',
            spotify_url TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT 1,
            featured BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS productions (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            artist_name TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            genre TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS carousel_highlights (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            subtitle TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            link_url TEXT NOT NULL DEFAULT '',
            position INTEGER NOT NULL DEFAULT 0,
            is_active BOOLEAN NOT NULL DEFAULT 1
        )`,

		`CREATE TABLE IF NOT EXISTS messages (
            id TEXT PRIMARY KEY,
            sender_id TEXT NOT NULL,
            recipient_id TEXT,
            subject TEXT NOT NULL DEFAULT '',
            content TEXT NOT NULL,
            is_admin_message BOOLEAN NOT NULL DEFAULT 0,
            is_read BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS radio_live_session (
            id TEXT PRIMARY KEY,
            host_name TEXT NOT NULL DEFAULT '',
            title TEXT NOT NULL DEFAULT '',
            is_live BOOLEAN NOT NULL DEFAULT 0,
            current_track_url TEXT NOT NULL DEFAULT '',
            current_track_name TEXT NOT NULL DEFAULT '',
            started_at DATETIME
        )`,

		`CREATE TABLE IF NOT EXISTS radio_loop_track (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL DEFAULT '',
            audio_url TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS radio_sound_effects (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            audio_url TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_start_time ON schedule_bookings(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON schedule_bookings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_productions_status ON productions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_position ON carousel_highlights(position)`,
		`CREATE INDEX IF NOT EXISTS idx_loop_track_active ON radio_loop_track(is_active)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) PingContext(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.db.Close()
}
