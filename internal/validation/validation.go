// Package validation holds the field checks applied at the CLI and TUI
// boundary. The core store does not re-validate; it trusts its callers.
package validation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

// ValidateName checks that a habit name is non-empty and at most 40 characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("habit name is required")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return fmt.Errorf("habit name must be at most %d characters", constants.MaxNameLength)
	}
	return nil
}

// ValidateDuration checks that a habit duration is between 1 and 5 minutes.
func ValidateDuration(minutes int) error {
	if minutes < constants.MinDurationMin || minutes > constants.MaxDurationMin {
		return fmt.Errorf("duration must be between %d and %d minutes", constants.MinDurationMin, constants.MaxDurationMin)
	}
	return nil
}

// ValidateReminderTime checks that a reminder time matches the HH:MM format.
func ValidateReminderTime(timeStr string) error {
	if _, err := time.Parse(constants.TimeFormat, timeStr); err != nil {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", timeStr)
	}
	return nil
}
