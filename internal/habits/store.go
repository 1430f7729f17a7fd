// Package habits owns the in-memory habit collection and its orchestration:
// load-on-start, CRUD, completion and undo, and the daily-reset sweep.
//
// Mutations apply to memory synchronously and are visible to readers at once;
// the durable write happens afterward on a background writer and a failure
// there is logged, never surfaced. A single writer goroutine drains snapshots
// in order, and a snapshot queued while a write is in flight replaces any
// older queued one, so intermediate states may be skipped but the state
// written last is always the newest. Memory is the source of truth between
// flushes.
package habits

import (
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/streak"
)

// Store is the single owner of the habit list for a process. It is
// constructed by the application shell and injected into whatever consumes it.
type Store struct {
	mu        sync.Mutex
	provider  storage.Provider
	writes    sync.WaitGroup
	habits    []models.Habit
	onboarded bool

	// persistMu guards the snapshot handoff to the writer goroutine.
	persistMu sync.Mutex
	pending   []models.Habit
	writing   bool
}

// NewHabit carries the caller-supplied fields for Add. Streak state always
// starts at zero and cannot be set at creation.
type NewHabit struct {
	Name            string
	Emoji           string
	DurationMin     int
	ReminderEnabled bool
	ReminderTime    string
}

// HabitUpdate is a partial patch for Update. Nil fields are left untouched, so
// editing a name or reminder can never disturb streak state unless the caller
// sets those fields explicitly.
type HabitUpdate struct {
	Name            *string
	Emoji           *string
	DurationMin     *int
	ReminderEnabled *bool
	ReminderTime    *string
	NotificationID  *string
	Streak          *int
	LongestStreak   *int
	CompletedToday  *bool
	LastCompleted   *string
}

func NewStore(provider storage.Provider) *Store {
	return &Store{
		provider: provider,
	}
}

// Load installs the persisted habits and onboarding flag, then runs the daily
// reset sweep. A provider failure yields an empty list rather than an error;
// the app starts regardless and the next successful flush repairs storage.
func (s *Store) Load() {
	habits, err := s.provider.LoadHabits()
	if err != nil {
		logger.Error("Failed to load habits, starting empty", "error", err)
		habits = nil
	}

	onboarded, err := s.provider.LoadOnboarding()
	if err != nil {
		logger.Error("Failed to load onboarding flag", "error", err)
		onboarded = false
	}

	s.mu.Lock()
	s.habits = habits
	s.onboarded = onboarded
	s.mu.Unlock()

	s.ResetDailyCompletion()
}

// Habits returns a copy of the habit list in display order.
func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the habit with the given id.
func (s *Store) Get(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.habits[i], true
	}
	return models.Habit{}, false
}

// GetByName returns the first habit with the given name.
func (s *Store) GetByName(name string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Add creates a habit with fresh streak state, appends it to the list, and
// returns the created record. The in-memory append completes before Add
// returns; the durable write follows asynchronously.
func (s *Store) Add(data NewHabit) models.Habit {
	habit := models.Habit{
		ID:              uuid.New().String(),
		Name:            data.Name,
		Emoji:           data.Emoji,
		DurationMin:     data.DurationMin,
		ReminderEnabled: data.ReminderEnabled,
		ReminderTime:    data.ReminderTime,
	}

	s.mu.Lock()
	s.habits = append(s.habits, habit)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
	return habit
}

// Update merges the non-nil fields of upd into the habit with the given id.
// Unknown ids are a silent no-op.
func (s *Store) Update(id string, upd HabitUpdate) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	h := &s.habits[i]
	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Emoji != nil {
		h.Emoji = *upd.Emoji
	}
	if upd.DurationMin != nil {
		h.DurationMin = *upd.DurationMin
	}
	if upd.ReminderEnabled != nil {
		h.ReminderEnabled = *upd.ReminderEnabled
	}
	if upd.ReminderTime != nil {
		h.ReminderTime = *upd.ReminderTime
	}
	if upd.NotificationID != nil {
		h.NotificationID = *upd.NotificationID
	}
	if upd.Streak != nil {
		h.Streak = *upd.Streak
	}
	if upd.LongestStreak != nil {
		h.LongestStreak = *upd.LongestStreak
	}
	if upd.CompletedToday != nil {
		h.CompletedToday = *upd.CompletedToday
	}
	if upd.LastCompleted != nil {
		h.LastCompleted = *upd.LastCompleted
	}

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
}

// Delete removes the habit with the given id. Unknown ids are a silent no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
}

// Complete marks the habit done for today and advances its streak. Completion
// is at-most-once per day: a habit already completed today is left untouched.
// Both the flag and the date are checked because they can drift apart across a
// day boundary before the sweep runs.
func (s *Store) Complete(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	h := s.habits[i]
	if h.CompletedToday || dates.IsToday(h.LastCompleted) {
		s.mu.Unlock()
		return
	}

	h.Streak, h.LongestStreak = streak.CheckStreak(h)
	h.CompletedToday = true
	h.LastCompleted = dates.Today()
	s.habits[i] = h

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
}

// Undo reverses today's completion. Only a completion made today can be
// undone; anything else is a silent no-op.
func (s *Store) Undo(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	h := s.habits[i]
	if !h.CompletedToday || !dates.IsToday(h.LastCompleted) {
		s.mu.Unlock()
		return
	}

	h.Streak, h.LastCompleted = streak.ComputeStreakAfterUndo(h)
	h.CompletedToday = false
	s.habits[i] = h

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
}

// ResetDailyCompletion clears CompletedToday for every habit whose last
// completion is not today. Streaks are untouched; a missed day only shows up
// the next time the habit is completed. The sweep is idempotent and always
// persists, even when nothing changed.
func (s *Store) ResetDailyCompletion() {
	s.mu.Lock()
	for i := range s.habits {
		if !dates.IsToday(s.habits[i].LastCompleted) {
			s.habits[i].CompletedToday = false
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persistHabits(snapshot)
}

// HasCompletedOnboarding reports whether the onboarding flow has been finished.
func (s *Store) HasCompletedOnboarding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// SetHasCompletedOnboarding sets and persists the onboarding flag.
func (s *Store) SetHasCompletedOnboarding(value bool) {
	s.mu.Lock()
	s.onboarded = value
	s.mu.Unlock()

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.provider.SaveOnboarding(value); err != nil {
			logger.Error("Failed to persist onboarding flag", "error", err)
		}
	}()
}

// Flush blocks until all in-flight durable writes have finished. Call before
// process exit so a fire-and-forget write is not lost to an early exit.
func (s *Store) Flush() {
	s.writes.Wait()
}

func (s *Store) indexLocked(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []models.Habit {
	snapshot := make([]models.Habit, len(s.habits))
	copy(snapshot, s.habits)
	return snapshot
}

// persistHabits hands a snapshot to the background writer. At most one writer
// goroutine runs at a time and it always takes the newest queued snapshot, so
// provider writes are serialized and the last write before Flush returns
// carries the state memory held at the final mutation.
func (s *Store) persistHabits(snapshot []models.Habit) {
	s.persistMu.Lock()
	s.pending = snapshot
	if s.writing {
		// The running writer picks this snapshot up on its next pass.
		s.persistMu.Unlock()
		return
	}
	s.writing = true
	s.persistMu.Unlock()

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		for {
			s.persistMu.Lock()
			snapshot := s.pending
			s.pending = nil
			if snapshot == nil {
				s.writing = false
				s.persistMu.Unlock()
				return
			}
			s.persistMu.Unlock()

			if err := s.provider.SaveHabits(snapshot); err != nil {
				logger.Error("Failed to persist habits", "error", err)
			}
		}
	}()
}
