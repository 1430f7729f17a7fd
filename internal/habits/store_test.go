package habits

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

// memoryProvider is an in-memory storage.Provider for exercising the store
// without touching disk.
type memoryProvider struct {
	mu        sync.Mutex
	habits    []models.Habit
	onboarded bool

	saveHabitCalls      int
	saveOnboardingCalls int
	failSaves           bool
	loadErr             error
}

func (p *memoryProvider) Init() error  { return nil }
func (p *memoryProvider) Load() error  { return nil }
func (p *memoryProvider) Close() error { return nil }

func (p *memoryProvider) LoadHabits() ([]models.Habit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	habits := make([]models.Habit, len(p.habits))
	copy(habits, p.habits)
	return habits, nil
}

func (p *memoryProvider) SaveHabits(habits []models.Habit) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveHabitCalls++
	if p.failSaves {
		return fmt.Errorf("save failed")
	}
	p.habits = make([]models.Habit, len(habits))
	copy(p.habits, habits)
	return nil
}

func (p *memoryProvider) LoadOnboarding() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return false, p.loadErr
	}
	return p.onboarded, nil
}

func (p *memoryProvider) SaveOnboarding(value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveOnboardingCalls++
	if p.failSaves {
		return fmt.Errorf("save failed")
	}
	p.onboarded = value
	return nil
}

func (p *memoryProvider) GetConfigPath() string { return "memory" }

func (p *memoryProvider) savedHabits() []models.Habit {
	p.mu.Lock()
	defer p.mu.Unlock()
	habits := make([]models.Habit, len(p.habits))
	copy(habits, p.habits)
	return habits
}

func (p *memoryProvider) habitSaves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveHabitCalls
}

func daysAgo(n int) string {
	return dates.Format(time.Now().AddDate(0, 0, -n))
}

func newLoadedStore(t *testing.T, provider *memoryProvider) *Store {
	t.Helper()
	store := NewStore(provider)
	store.Load()
	store.Flush()
	return store
}

func TestLoadRunsDailyResetSweep(t *testing.T) {
	provider := &memoryProvider{
		habits: []models.Habit{
			{ID: "a", Name: "Stretch", Streak: 3, LongestStreak: 3, CompletedToday: true, LastCompleted: daysAgo(1)},
			{ID: "b", Name: "Read", Streak: 2, LongestStreak: 5, CompletedToday: true, LastCompleted: daysAgo(0)},
		},
	}

	store := newLoadedStore(t, provider)
	habits := store.Habits()

	if habits[0].CompletedToday {
		t.Error("stale completion flag not cleared")
	}
	if habits[0].Streak != 3 || habits[0].LongestStreak != 3 {
		t.Errorf("sweep touched streak state: got %d/%d", habits[0].Streak, habits[0].LongestStreak)
	}
	if !habits[1].CompletedToday {
		t.Error("today's completion flag was cleared")
	}
	if provider.habitSaves() == 0 {
		t.Error("sweep did not persist")
	}
}

func TestLoadFailsOpen(t *testing.T) {
	provider := &memoryProvider{loadErr: fmt.Errorf("disk on fire")}

	store := newLoadedStore(t, provider)

	if got := store.Habits(); len(got) != 0 {
		t.Errorf("expected empty list after load failure, got %d habits", len(got))
	}
	if store.HasCompletedOnboarding() {
		t.Error("onboarding flag should default to false after load failure")
	}
}

func TestAdd(t *testing.T) {
	provider := &memoryProvider{}
	store := newLoadedStore(t, provider)

	first := store.Add(NewHabit{Name: "Stretch", Emoji: "🧘", DurationMin: 2})
	second := store.Add(NewHabit{Name: "Read", DurationMin: 5, ReminderEnabled: true, ReminderTime: "07:30"})
	store.Flush()

	if first.ID == "" || second.ID == "" {
		t.Fatal("Add did not assign ids")
	}
	if first.ID == second.ID {
		t.Fatalf("Add reused id %q", first.ID)
	}
	if first.Streak != 0 || first.LongestStreak != 0 || first.CompletedToday || first.LastCompleted != "" {
		t.Errorf("new habit has non-zero streak state: %+v", first)
	}

	habits := store.Habits()
	if len(habits) != 2 || habits[0].Name != "Stretch" || habits[1].Name != "Read" {
		t.Errorf("insertion order not preserved: %+v", habits)
	}
	if saved := provider.savedHabits(); !reflect.DeepEqual(saved, habits) {
		t.Errorf("persisted state diverges from memory:\n saved %+v\n  have %+v", saved, habits)
	}
}

func TestUpdatePreservesStreakState(t *testing.T) {
	provider := &memoryProvider{
		habits: []models.Habit{
			{ID: "a", Name: "Stretch", DurationMin: 2, Streak: 7, LongestStreak: 9, LastCompleted: daysAgo(1)},
		},
	}
	store := newLoadedStore(t, provider)

	name := "Morning stretch"
	duration := 3
	store.Update("a", HabitUpdate{Name: &name, DurationMin: &duration})
	store.Flush()

	h, ok := store.Get("a")
	if !ok {
		t.Fatal("habit disappeared")
	}
	if h.Name != "Morning stretch" || h.DurationMin != 3 {
		t.Errorf("update not applied: %+v", h)
	}
	if h.Streak != 7 || h.LongestStreak != 9 || h.LastCompleted != daysAgo(1) {
		t.Errorf("update disturbed streak state: %+v", h)
	}
}

func TestUpdateExplicitStreakFields(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{{ID: "a", Name: "Stretch"}}}
	store := newLoadedStore(t, provider)

	streak := 4
	store.Update("a", HabitUpdate{Streak: &streak})
	store.Flush()

	if h, _ := store.Get("a"); h.Streak != 4 {
		t.Errorf("explicit streak patch not applied: %+v", h)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{{ID: "a", Name: "Stretch"}}}
	store := newLoadedStore(t, provider)
	before := provider.habitSaves()

	name := "Nope"
	store.Update("missing", HabitUpdate{Name: &name})
	store.Flush()

	if h, _ := store.Get("a"); h.Name != "Stretch" {
		t.Errorf("unrelated habit changed: %+v", h)
	}
	if provider.habitSaves() != before {
		t.Error("no-op update persisted")
	}
}

func TestDelete(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch"},
		{ID: "b", Name: "Read"},
	}}
	store := newLoadedStore(t, provider)

	store.Delete("a")
	store.Delete("missing")
	store.Flush()

	habits := store.Habits()
	if len(habits) != 1 || habits[0].ID != "b" {
		t.Errorf("unexpected list after delete: %+v", habits)
	}
	if saved := provider.savedHabits(); len(saved) != 1 || saved[0].ID != "b" {
		t.Errorf("delete not persisted: %+v", saved)
	}
}

func TestCompleteFirstTime(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{{ID: "a", Name: "Stretch"}}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 1 || h.LongestStreak != 1 {
		t.Errorf("first completion: got streak %d longest %d, want 1/1", h.Streak, h.LongestStreak)
	}
	if !h.CompletedToday || h.LastCompleted != dates.Today() {
		t.Errorf("completion markers not set: %+v", h)
	}
}

func TestCompleteExtendsConsecutiveStreak(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 5, LongestStreak: 5, LastCompleted: daysAgo(1)},
	}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 6 || h.LongestStreak != 6 {
		t.Errorf("got streak %d longest %d, want 6/6", h.Streak, h.LongestStreak)
	}
}

func TestCompleteAfterGapKeepsLongest(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 20, LongestStreak: 20, LastCompleted: daysAgo(10)},
	}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 1 {
		t.Errorf("got streak %d after gap, want 1", h.Streak)
	}
	if h.LongestStreak != 20 {
		t.Errorf("high-water mark lowered to %d", h.LongestStreak)
	}
}

func TestCompleteIsIdempotentPerDay(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 5, LongestStreak: 5, LastCompleted: daysAgo(1)},
	}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	once, _ := store.Get("a")
	store.Complete("a")
	store.Complete("a")
	store.Flush()

	twice, _ := store.Get("a")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("repeated completion changed state:\n once %+v\ntwice %+v", once, twice)
	}
}

func TestCompleteGuardsOnDateAlone(t *testing.T) {
	// The flag can lag the date across a day boundary; a today date must block
	// completion even with the flag down.
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 5, LongestStreak: 5, CompletedToday: false, LastCompleted: daysAgo(0)},
	}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 5 {
		t.Errorf("completion applied despite today's date: %+v", h)
	}
}

func TestUndoRoundTrip(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 5, LongestStreak: 8, LastCompleted: daysAgo(1)},
	}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Undo("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 5 || h.LastCompleted != daysAgo(1) || h.CompletedToday {
		t.Errorf("undo did not restore pre-completion state: %+v", h)
	}
}

func TestUndoFirstCompletion(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{{ID: "a", Name: "Stretch"}}}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Undo("a")
	store.Flush()

	h, _ := store.Get("a")
	if h.Streak != 0 || h.LastCompleted != "" || h.CompletedToday {
		t.Errorf("undo of first completion did not return to empty state: %+v", h)
	}
}

func TestUndoGuards(t *testing.T) {
	tests := []struct {
		name  string
		habit models.Habit
	}{
		{
			name:  "not completed today",
			habit: models.Habit{ID: "a", Streak: 4, LastCompleted: daysAgo(1)},
		},
		{
			name:  "flag up but date is yesterday",
			habit: models.Habit{ID: "a", Streak: 4, CompletedToday: true, LastCompleted: daysAgo(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &memoryProvider{habits: []models.Habit{tt.habit}}
			store := NewStore(provider)
			store.mu.Lock()
			store.habits = []models.Habit{tt.habit}
			store.mu.Unlock()

			store.Undo("a")
			store.Flush()

			h, _ := store.Get("a")
			if h.Streak != tt.habit.Streak || h.LastCompleted != tt.habit.LastCompleted {
				t.Errorf("guard failed, state changed: %+v", h)
			}
		})
	}
}

func TestResetDailyCompletionIsIdempotent(t *testing.T) {
	provider := &memoryProvider{habits: []models.Habit{
		{ID: "a", Name: "Stretch", Streak: 3, CompletedToday: true, LastCompleted: daysAgo(1)},
		{ID: "b", Name: "Read", Streak: 1, CompletedToday: true, LastCompleted: daysAgo(0)},
		{ID: "c", Name: "Floss", Streak: 0, CompletedToday: false, LastCompleted: ""},
	}}
	store := newLoadedStore(t, provider)

	first := store.Habits()
	saves := provider.habitSaves()

	store.ResetDailyCompletion()
	store.Flush()

	if second := store.Habits(); !reflect.DeepEqual(first, second) {
		t.Errorf("second sweep changed state:\n first %+v\nsecond %+v", first, second)
	}
	if provider.habitSaves() <= saves {
		t.Error("sweep with no changes skipped persistence")
	}
}

func TestPersistenceFailureIsNotSurfaced(t *testing.T) {
	provider := &memoryProvider{
		habits:    []models.Habit{{ID: "a", Name: "Stretch"}},
		failSaves: true,
	}
	store := newLoadedStore(t, provider)

	store.Complete("a")
	store.Flush()

	// The in-memory mutation must survive even though every write fails.
	h, _ := store.Get("a")
	if h.Streak != 1 || !h.CompletedToday {
		t.Errorf("mutation lost when persistence fails: %+v", h)
	}
}

func TestFlushPersistsLatestState(t *testing.T) {
	// Writes are coalesced onto a single writer, so no matter how many
	// mutations race ahead of the provider, the state on disk after Flush is
	// the state in memory.
	provider := &memoryProvider{}
	store := newLoadedStore(t, provider)

	var ids []string
	for i := 0; i < 25; i++ {
		h := store.Add(NewHabit{Name: fmt.Sprintf("Habit %d", i), DurationMin: 1})
		ids = append(ids, h.ID)
	}
	for _, id := range ids {
		store.Complete(id)
	}
	store.Undo(ids[0])
	store.Flush()

	memory := store.Habits()
	if len(memory) != 25 {
		t.Fatalf("expected 25 habits in memory, got %d", len(memory))
	}
	if saved := provider.savedHabits(); !reflect.DeepEqual(saved, memory) {
		t.Errorf("persisted state diverges from memory after flush:\n saved %d habits\n  have %d habits", len(saved), len(memory))
	}
}

func TestConcurrentMutationsAgainstJSONProvider(t *testing.T) {
	// The real JSON provider rewrites its whole document on save; interleaved
	// mutations from several goroutines must leave it consistent with memory.
	path := filepath.Join(t.TempDir(), "tinyhabits.json")
	provider := storage.NewJSONStore(path)
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	store := NewStore(provider)
	store.Load()

	var ids []string
	for i := 0; i < 8; i++ {
		h := store.Add(NewHabit{Name: fmt.Sprintf("Habit %d", i), DurationMin: 1})
		ids = append(ids, h.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			store.Complete(id)
			store.Undo(id)
			store.Complete(id)
		}(id)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.SetHasCompletedOnboarding(true)
	}()
	wg.Wait()
	store.Flush()

	memory := store.Habits()

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	saved, err := reopened.LoadHabits()
	if err != nil {
		t.Fatalf("LoadHabits() error: %v", err)
	}
	if !reflect.DeepEqual(saved, memory) {
		t.Errorf("persisted state diverges from memory:\n saved %+v\n  have %+v", saved, memory)
	}
	for _, h := range saved {
		if !h.CompletedToday || h.Streak != 1 {
			t.Errorf("unexpected final habit state: %+v", h)
		}
	}
}

func TestOnboardingFlag(t *testing.T) {
	provider := &memoryProvider{}
	store := newLoadedStore(t, provider)

	if store.HasCompletedOnboarding() {
		t.Error("onboarding should start false")
	}

	store.SetHasCompletedOnboarding(true)
	store.Flush()

	if !store.HasCompletedOnboarding() {
		t.Error("onboarding flag not set")
	}
	provider.mu.Lock()
	persisted := provider.onboarded
	provider.mu.Unlock()
	if !persisted {
		t.Error("onboarding flag not persisted")
	}
}
