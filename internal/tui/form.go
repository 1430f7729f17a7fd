package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinyhabits/internal/validation"
)

func newHabitForm(data *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&data.Name).
				Validate(validation.ValidateName),
			huh.NewInput().
				Title("Emoji").
				Value(&data.Emoji),
			huh.NewSelect[int]().
				Title("Duration").
				Options(
					huh.NewOption("1 minute", 1),
					huh.NewOption("2 minutes", 2),
					huh.NewOption("3 minutes", 3),
					huh.NewOption("4 minutes", 4),
					huh.NewOption("5 minutes", 5),
				).
				Value(&data.Duration),
			huh.NewConfirm().
				Title("Daily reminder?").
				Value(&data.ReminderEnabled),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Value(&data.ReminderTime).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validation.ValidateReminderTime(s)
				}),
		),
	)
}
