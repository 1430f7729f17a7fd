// Package reminder schedules habit reminders and the midnight daily-reset
// sweep as wall-clock cron entries.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(text string) error
}

// Scheduler maps habits to cron entries. A habit's NotificationID is the
// handle of its current entry.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	store    *habits.Store
	notifier Notifier
	entries  map[string]cron.EntryID
}

func New(store *habits.Store, notifier Notifier) *Scheduler {
	s := &Scheduler{
		cron:     cron.New(),
		store:    store,
		notifier: notifier,
		entries:  make(map[string]cron.EntryID),
	}

	// Day rollover: clear yesterday's completion flags and drop reminder
	// entries for habits that no longer want them.
	if _, err := s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("Running midnight daily reset")
		store.ResetDailyCompletion()
		s.Resync()
	}); err != nil {
		logger.Error("Failed to register midnight reset", "error", err)
	}

	return s
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// ScheduleAll registers a reminder for every reminder-enabled habit and
// writes the resulting handles back onto the records.
func (s *Scheduler) ScheduleAll() {
	for _, h := range s.store.Habits() {
		if !h.ReminderEnabled || h.ReminderTime == "" {
			continue
		}
		handle, err := s.Schedule(h)
		if err != nil {
			logger.Warn("Failed to schedule reminder", "habit", h.Name, "error", err)
			continue
		}
		s.store.Update(h.ID, habits.HabitUpdate{NotificationID: &handle})
	}
}

// Schedule registers a daily cron entry at the habit's reminder time and
// returns its handle. An existing entry for the habit is replaced.
func (s *Scheduler) Schedule(h models.Habit) (string, error) {
	spec, err := cronSpec(h.ReminderTime)
	if err != nil {
		return "", err
	}

	habitID := h.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[habitID]; ok {
		s.cron.Remove(id)
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		s.fire(habitID)
	})
	if err != nil {
		return "", err
	}
	s.entries[habitID] = entryID

	return strconv.Itoa(int(entryID)), nil
}

// Cancel removes the habit's reminder entry and clears its handle.
func (s *Scheduler) Cancel(habitID string) {
	s.mu.Lock()
	id, ok := s.entries[habitID]
	if ok {
		s.cron.Remove(id)
		delete(s.entries, habitID)
	}
	s.mu.Unlock()

	if ok {
		empty := ""
		s.store.Update(habitID, habits.HabitUpdate{NotificationID: &empty})
	}
}

// Resync reconciles cron entries with the habit list: entries whose habit is
// gone or no longer wants reminders are cancelled, and every reminder-enabled
// habit is rescheduled so an edited reminder time takes effect.
func (s *Scheduler) Resync() {
	wanted := make(map[string]bool)
	for _, h := range s.store.Habits() {
		if h.ReminderEnabled && h.ReminderTime != "" {
			wanted[h.ID] = true
		}
	}

	s.mu.Lock()
	var stale []string
	for id := range s.entries {
		if !wanted[id] {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		s.Cancel(id)
	}
	s.ScheduleAll()
}

// Scheduled reports whether the habit currently has a reminder entry.
func (s *Scheduler) Scheduled(habitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[habitID]
	return ok
}

func (s *Scheduler) fire(habitID string) {
	h, ok := s.store.Get(habitID)
	if !ok || !h.ReminderEnabled {
		// The habit is gone or its reminder was turned off after scheduling;
		// drop the entry so it stops firing.
		s.Cancel(habitID)
		return
	}
	// No nagging about a habit already done today.
	if h.CompletedToday {
		return
	}

	text := strings.TrimSpace(fmt.Sprintf("%s %s (%d min)", h.Emoji, h.Name, h.DurationMin))
	if err := s.notifier.Notify(text); err != nil {
		logger.Warn("Failed to deliver reminder", "habit", h.Name, "error", err)
	}
}

// cronSpec converts an HH:MM reminder time to a daily cron expression.
func cronSpec(timeStr string) (string, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return "", fmt.Errorf("invalid reminder time %q: %w", timeStr, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
