package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/tui/components/habitlist"
)

type sessionState int

const (
	stateOnboarding sessionState = iota
	stateList
	stateForm
	stateConfirmDelete
)

// HabitFormModel backs the add/edit habit form.
type HabitFormModel struct {
	Name            string
	Emoji           string
	Duration        int
	ReminderEnabled bool
	ReminderTime    string
}

type KeyMap struct {
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// tickMsg drives the day-rollover check while the TUI stays open overnight.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	store      *habits.Store
	state      sessionState
	keys       KeyMap
	list       habitlist.Model
	form       *huh.Form
	formData   *HabitFormModel
	editingID  string
	deletingID string
	today      string
	width      int
	height     int
	quitting   bool
}

func New(store *habits.Store) Model {
	state := stateList
	if !store.HasCompletedOnboarding() {
		state = stateOnboarding
	}

	return Model{
		store: store,
		state: state,
		keys:  DefaultKeyMap(),
		list:  habitlist.New(store.Habits(), 0, 0),
		today: dates.Today(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}
