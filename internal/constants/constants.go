package constants

import "time"

const (
	AppName            = "tinyhabits"
	Version            = "v0.1.0"
	DefaultConfigPath  = "~/.config/tinyhabits/tinyhabits.db"
	DefaultKeyringUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard reminder time format (HH:MM)
	TimeFormat = "15:04"

	// Habit field bounds, enforced at the CLI/TUI boundary
	MaxNameLength  = 40
	MinDurationMin = 1
	MaxDurationMin = 5

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tinyhabits-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tinyhabits"
)
