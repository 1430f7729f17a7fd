package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	emoji            TEXT NOT NULL DEFAULT '',
	duration_min     INTEGER NOT NULL DEFAULT 1,
	reminder_enabled BOOLEAN NOT NULL DEFAULT FALSE,
	reminder_time    TEXT NOT NULL DEFAULT '',
	notification_id  TEXT NOT NULL DEFAULT '',
	streak           INTEGER NOT NULL DEFAULT 0,
	longest_streak   INTEGER NOT NULL DEFAULT 0,
	completed_today  BOOLEAN NOT NULL DEFAULT FALSE,
	last_completed   TEXT NOT NULL DEFAULT '',
	position         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a postgres connection URL carries a
// password. Credentials belong in the OS keyring, not on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) LoadHabits() ([]models.Habit, error) {
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

		err := rows.Scan(&h.ID, &h.Name, &h.Emoji, &h.DurationMin, &h.ReminderEnabled,
			&h.ReminderTime, &h.NotificationID, &h.Streak, &h.LongestStreak,
			&h.CompletedToday, &h.LastCompleted)
		if err != nil {
			logger.Warn("Skipping unreadable habit row", "error", err)
			continue
		}

		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *PostgresStore) SaveHabits(habits []models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return err
	}

	for i, h := range habits {
		_, err := tx.Exec(`
			INSERT INTO habits (id, name, emoji, duration_min, reminder_enabled, reminder_time,
				notification_id, streak, longest_streak, completed_today, last_completed, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			h.ID, h.Name, h.Emoji, h.DurationMin, h.ReminderEnabled, h.ReminderTime,
			h.NotificationID, h.Streak, h.LongestStreak, h.CompletedToday, h.LastCompleted, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) LoadOnboarding() (bool, error) {
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

func (s *PostgresStore) SaveOnboarding(value bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	strValue := "false"
	if value {
		strValue = "true"
	}
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES ('onboarded', $1)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, strValue)
	return err
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
