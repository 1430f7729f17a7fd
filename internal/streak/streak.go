// Package streak holds the pure streak arithmetic: what a habit's streak
// becomes when it is completed, and how an undo rolls it back. All functions
// are total over their inputs and touch no state beyond the system clock.
package streak

import (
	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// ComputeNewStreak returns the streak a habit should carry after being marked
// complete on the given day.
//
// A habit never completed starts at 1. A habit already completed today keeps
// its streak unchanged (callers guard against this case, but the function does
// not increment regardless). Completion the day after the previous one extends
// the chain. Any longer gap resets to 1 no matter how long the gap was; there
// is no partial credit.
func ComputeNewStreak(h models.Habit, today string) int {
	if h.LastCompleted == "" {
		return 1
	}
	if h.LastCompleted == today {
		return h.Streak
	}
	if dates.IsYesterday(h.LastCompleted) {
		return h.Streak + 1
	}
	return 1
}

// CheckStreak computes the habit's next streak for a completion happening now,
// along with the updated longest-streak high-water mark.
func CheckStreak(h models.Habit) (streak, longest int) {
	streak = ComputeNewStreak(h, dates.Today())
	longest = h.LongestStreak
	if streak > longest {
		longest = streak
	}
	return streak, longest
}

// ComputeStreakAfterUndo is the inverse of a same-day completion. It returns
// the streak and last-completed date the habit should revert to.
//
// Undoing is only valid for today's completion; any other state is returned
// unchanged. A streak above 1 means the previous completion was yesterday, so
// the habit rolls back to that day. A streak of 1 means today was the first
// completion ever and the habit returns to its never-completed state.
// LongestStreak is a permanent high-water mark and is never rolled back.
func ComputeStreakAfterUndo(h models.Habit) (streak int, lastCompleted string) {
	if !h.CompletedToday || !dates.IsToday(h.LastCompleted) {
		return h.Streak, h.LastCompleted
	}
	if h.Streak > 1 {
		return h.Streak - 1, dates.Yesterday()
	}
	return 0, ""
}
