package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/reminder"
)

type RemindCmd struct{}

// Run starts the reminder scheduler and blocks until interrupted. Reminders
// fire at each habit's configured time; the midnight job clears yesterday's
// completion flags.
func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	sched := reminder.New(ctx.Habits, notifier.New())
	sched.ScheduleAll()
	sched.Start()
	defer sched.Stop()

	fmt.Println("Reminder scheduler running. Press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}
