package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/validation"
)

type AddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Emoji    string `help:"Emoji shown next to the habit." default:""`
	Duration int    `help:"Habit duration in minutes (1-5)." default:"1"`
	RemindAt string `help:"Daily reminder time (HH:MM)." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := validation.ValidateName(c.Name); err != nil {
		return err
	}
	if err := validation.ValidateDuration(c.Duration); err != nil {
		return err
	}
	if c.RemindAt != "" {
		if err := validation.ValidateReminderTime(c.RemindAt); err != nil {
			return err
		}
	}

	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	// Check if habit with same name already exists
	if _, ok := ctx.Habits.GetByName(c.Name); ok {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	ctx.Habits.Add(habits.NewHabit{
		Name:            c.Name,
		Emoji:           c.Emoji,
		DurationMin:     c.Duration,
		ReminderEnabled: c.RemindAt != "",
		ReminderTime:    c.RemindAt,
	})

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	habitList := ctx.Habits.Habits()
	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habitList {
		fmt.Println(formatHabitLine(h))
	}

	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	habitList := ctx.Habits.Habits()
	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", dates.Today())

	completed := 0
	for _, h := range habitList {
		status := "[ ]"
		if h.CompletedToday {
			status = "[x]"
			completed++
		}
		fmt.Printf("%s %s\n", status, displayName(h))
	}

	fmt.Printf("\nCompleted: %d/%d\n", completed, len(habitList))
	return nil
}

type DoneCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	h, err := ctx.findHabit(c.Name)
	if err != nil {
		return err
	}

	if h.CompletedToday || dates.IsToday(h.LastCompleted) {
		fmt.Printf("%q is already done today.\n", c.Name)
		return nil
	}

	ctx.Habits.Complete(h.ID)

	updated, _ := ctx.Habits.Get(h.ID)
	fmt.Printf("Marked %q done (streak: %d)\n", c.Name, updated.Streak)
	return nil
}

type UndoCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	h, err := ctx.findHabit(c.Name)
	if err != nil {
		return err
	}

	if !h.CompletedToday || !dates.IsToday(h.LastCompleted) {
		fmt.Printf("Nothing to undo for %q today.\n", c.Name)
		return nil
	}

	ctx.Habits.Undo(h.ID)

	updated, _ := ctx.Habits.Get(h.ID)
	fmt.Printf("Undid today's completion of %q (streak: %d)\n", c.Name, updated.Streak)
	return nil
}

type EditCmd struct {
	Name       string `arg:"" help:"Habit name."`
	NewName    string `help:"New habit name."`
	Emoji      string `help:"New emoji."`
	Duration   int    `help:"New duration in minutes (1-5)." default:"0"`
	RemindAt   string `help:"New daily reminder time (HH:MM)."`
	NoReminder bool   `help:"Disable the daily reminder."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	h, err := ctx.findHabit(c.Name)
	if err != nil {
		return err
	}

	// Only caller-supplied fields go into the patch; streak state is never
	// touched by an edit.
	var upd habits.HabitUpdate

	if c.NewName != "" {
		if err := validation.ValidateName(c.NewName); err != nil {
			return err
		}
		upd.Name = &c.NewName
	}
	if c.Emoji != "" {
		upd.Emoji = &c.Emoji
	}
	if c.Duration != 0 {
		if err := validation.ValidateDuration(c.Duration); err != nil {
			return err
		}
		upd.DurationMin = &c.Duration
	}
	if c.NoReminder {
		disabled := false
		empty := ""
		upd.ReminderEnabled = &disabled
		upd.ReminderTime = &empty
	} else if c.RemindAt != "" {
		if err := validation.ValidateReminderTime(c.RemindAt); err != nil {
			return err
		}
		enabled := true
		upd.ReminderEnabled = &enabled
		upd.ReminderTime = &c.RemindAt
	}

	ctx.Habits.Update(h.ID, upd)

	fmt.Printf("Updated habit: %s\n", c.Name)
	return nil
}

type DeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	h, err := ctx.findHabit(c.Name)
	if err != nil {
		return err
	}

	ctx.Habits.Delete(h.ID)

	fmt.Printf("Deleted habit: %s\n", c.Name)
	return nil
}

func displayName(h models.Habit) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", h.Emoji, h.Name))
}

func formatHabitLine(h models.Habit) string {
	status := "○"
	if h.CompletedToday {
		status = "✓"
	}
	return fmt.Sprintf("%s %s  (%d min)  streak %d · best %d",
		status, displayName(h), h.DurationMin, h.Streak, h.LongestStreak)
}
