// Package store persists slideshow settings and the display schedule.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{db: db}

	if err := database.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return database, nil
}

func (d *Database) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS slideshow_settings (
		singleton INTEGER NOT NULL DEFAULT 1 CHECK (singleton = 1),
		interval_seconds INTEGER NOT NULL,
		shuffle_enabled  INTEGER NOT NULL,
		fit_mode         TEXT NOT NULL,
		PRIMARY KEY (singleton)
	);
	CREATE TABLE IF NOT EXISTS schedule (
		singleton INTEGER NOT NULL DEFAULT 1 CHECK (singleton = 1),
		enabled INTEGER NOT NULL,
		start   TEXT NOT NULL,
		end     TEXT NOT NULL,
		PRIMARY KEY (singleton)
	);
	`
	_, err := d.db.Exec(query)
	return err
}

func (d *Database) GetSettings() (*Settings, error) {
	const query = `
		SELECT interval_seconds,
		       shuffle_enabled,
		       fit_mode
		FROM slideshow_settings
		WHERE singleton = 1
	`

	var interval, shuffleInt int
	var fitMode string

	err := d.db.QueryRow(query).Scan(&interval, &shuffleInt, &fitMode)
	if err == sql.ErrNoRows {
		// Bootstrap defaults if no settings row exists yet
		defaults := &Settings{
			IntervalSeconds: 10,
			ShuffleEnabled:  false,
			FitMode:         "fill",
		}
		if err := d.UpsertSettings(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &Settings{
		IntervalSeconds: interval,
		ShuffleEnabled:  shuffleInt != 0,
		FitMode:         fitMode,
	}, nil
}

func (d *Database) UpsertSettings(s *Settings) error {
	const stmt = `
		INSERT INTO slideshow_settings (
			singleton,
			interval_seconds,
			shuffle_enabled,
			fit_mode
		) VALUES (1, ?, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			interval_seconds = excluded.interval_seconds,
			shuffle_enabled  = excluded.shuffle_enabled,
			fit_mode         = excluded.fit_mode
	`

	_, err := d.db.Exec(
		stmt,
		s.IntervalSeconds,
		boolToInt(s.ShuffleEnabled),
		s.FitMode,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (d *Database) GetSchedule() (*Schedule, error) {
	const query = `
		SELECT enabled,
		       start,
		       end
		FROM schedule
		WHERE singleton = 1
	`

	var enabled bool
	var start, end string

	err := d.db.QueryRow(query).Scan(&enabled, &start, &end)
	if err == sql.ErrNoRows {
		// Bootstrap defaults if no schedule row exists yet
		defaults := &Schedule{
			Enabled: false,
			Start:   "06:00",
			End:     "23:00",
		}
		if err := d.UpsertSchedule(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return &Schedule{
		Enabled: enabled,
		Start:   start,
		End:     end,
	}, nil
}

func (d *Database) UpsertSchedule(s *Schedule) error {
	const stmt = `
		INSERT INTO schedule (
			singleton,
			enabled,
			start,
			end
		) VALUES (1, ?, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			enabled = excluded.enabled,
			start   = excluded.start,
			end     = excluded.end
	`

	_, err := d.db.Exec(
		stmt,
		boolToInt(s.Enabled),
		s.Start,
		s.End,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (d *Database) Close() error {
	return d.db.Close()
}
