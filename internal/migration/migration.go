// Package migration moves habit data between storage backends, for example
// from a JSON document to a SQLite database.
package migration

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/storage"
)

// Migrate copies all habits and the onboarding flag from src to dst and
// returns the number of habits moved. The destination must be empty so a
// typo'd target cannot silently clobber existing data. Both providers must
// already be loaded or initialized.
func Migrate(src, dst storage.Provider) (int, error) {
	existing, err := dst.LoadHabits()
	if err != nil {
		return 0, fmt.Errorf("failed to inspect destination: %w", err)
	}
	if len(existing) > 0 {
		return 0, fmt.Errorf("destination %s already contains %d habits", dst.GetConfigPath(), len(existing))
	}

	habits, err := src.LoadHabits()
	if err != nil {
		return 0, fmt.Errorf("failed to read source habits: %w", err)
	}
	onboarded, err := src.LoadOnboarding()
	if err != nil {
		return 0, fmt.Errorf("failed to read source onboarding flag: %w", err)
	}

	if err := dst.SaveHabits(habits); err != nil {
		return 0, fmt.Errorf("failed to write habits: %w", err)
	}
	if err := dst.SaveOnboarding(onboarded); err != nil {
		return 0, fmt.Errorf("failed to write onboarding flag: %w", err)
	}

	return len(habits), nil
}
