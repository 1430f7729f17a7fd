package models

// Habit represents a single short daily practice and its streak state.
//
// LastCompleted is a calendar date string (YYYY-MM-DD) in local time; the
// empty string means the habit has never been completed. CompletedToday is
// only meaningful for the current calendar date and is cleared by the daily
// reset sweep once LastCompleted falls behind today.
type Habit struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Emoji           string `json:"emoji,omitempty"`
	DurationMin     int    `json:"duration_min"`
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderTime    string `json:"reminder_time,omitempty"` // HH:MM
	NotificationID  string `json:"notification_id,omitempty"`
	Streak          int    `json:"streak"`
	LongestStreak   int    `json:"longest_streak"`
	CompletedToday  bool   `json:"completed_today"`
	LastCompleted   string `json:"last_completed,omitempty"`
}
