package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	emoji            TEXT NOT NULL DEFAULT '',
	duration_min     INTEGER NOT NULL DEFAULT 1,
	reminder_enabled INTEGER NOT NULL DEFAULT 0,
	reminder_time    TEXT NOT NULL DEFAULT '',
	notification_id  TEXT NOT NULL DEFAULT '',
	streak           INTEGER NOT NULL DEFAULT 0,
	longest_streak   INTEGER NOT NULL DEFAULT 0,
	completed_today  INTEGER NOT NULL DEFAULT 0,
	last_completed   TEXT NOT NULL DEFAULT '',
	position         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tinyhabits init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load covers databases
	// created by older versions.
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadHabits() ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, name, emoji, duration_min, reminder_enabled, reminder_time,
		       notification_id, streak, longest_streak, completed_today, last_completed
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var reminderEnabled, completedToday int

		err := rows.Scan(&h.ID, &h.Name, &h.Emoji, &h.DurationMin, &reminderEnabled,
			&h.ReminderTime, &h.NotificationID, &h.Streak, &h.LongestStreak,
			&completedToday, &h.LastCompleted)
		if err != nil {
			// Unreadable rows behave like an empty store rather than a fatal
			// parse failure.
			logger.Warn("Skipping unreadable habit row", "error", err)
			continue
		}
		h.ReminderEnabled = reminderEnabled != 0
		h.CompletedToday = completedToday != 0

		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The habit list is persisted whole; replace everything.
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return err
	}

	for i, h := range habits {
		_, err := tx.Exec(`
			INSERT INTO habits (id, name, emoji, duration_min, reminder_enabled, reminder_time,
				notification_id, streak, longest_streak, completed_today, last_completed, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Name, h.Emoji, h.DurationMin, boolToInt(h.ReminderEnabled), h.ReminderTime,
			h.NotificationID, h.Streak, h.LongestStreak, boolToInt(h.CompletedToday), h.LastCompleted, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadOnboarding() (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'onboarded'`).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *SQLiteStore) SaveOnboarding(value bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	strValue := "false"
	if value {
		strValue = "true"
	}
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES ('onboarded', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, strValue)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
