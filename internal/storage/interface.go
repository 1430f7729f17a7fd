package storage

import "github.com/julianstephens/tinyhabits/internal/models"

// Provider persists the habit list and the onboarding flag as whole documents.
// The habit list is written last-write-wins in its entirety; there is no
// per-record update. Implementations return an empty list, not an error, when
// stored data is present but unreadable, so a corrupt file can never stop the
// app from starting.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	LoadHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Onboarding flag
	LoadOnboarding() (bool, error)
	SaveOnboarding(bool) error

	// Utils
	GetConfigPath() string
}
