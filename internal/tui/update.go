package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinyhabits/internal/dates"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)

	case tickMsg:
		// Day rollover while the TUI stays open: sweep completion flags.
		if today := dates.Today(); today != m.today {
			m.today = today
			m.store.ResetDailyCompletion()
			m.list.SetHabits(m.store.Habits())
		}
		return m, tickCmd()
	}

	switch m.state {
	case stateOnboarding:
		return m.updateOnboarding(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateOnboarding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		m.store.SetHasCompletedOnboarding(true)
		m.state = stateList
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case habitlist.AddHabitMsg:
		m.formData = &HabitFormModel{Duration: 1}
		m.editingID = ""
		m.form = newHabitForm(m.formData)
		m.state = stateForm
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		h, ok := m.store.Get(msg.ID)
		if !ok {
			return m, nil
		}
		m.formData = &HabitFormModel{
			Name:            h.Name,
			Emoji:           h.Emoji,
			Duration:        h.DurationMin,
			ReminderEnabled: h.ReminderEnabled,
			ReminderTime:    h.ReminderTime,
		}
		m.editingID = msg.ID
		m.form = newHabitForm(m.formData)
		m.state = stateForm
		return m, m.form.Init()

	case habitlist.CompleteHabitMsg:
		m.store.Complete(msg.ID)
		m.list.SetHabits(m.store.Habits())
		return m, nil

	case habitlist.UndoHabitMsg:
		m.store.Undo(msg.ID)
		m.list.SetHabits(m.store.Habits())
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.deletingID = msg.ID
		m.state = stateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = stateList
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if !m.formData.ReminderEnabled {
			m.formData.ReminderTime = ""
		}
		if m.editingID == "" {
			m.store.Add(habits.NewHabit{
				Name:            m.formData.Name,
				Emoji:           m.formData.Emoji,
				DurationMin:     m.formData.Duration,
				ReminderEnabled: m.formData.ReminderEnabled,
				ReminderTime:    m.formData.ReminderTime,
			})
		} else {
			m.store.Update(m.editingID, habits.HabitUpdate{
				Name:            &m.formData.Name,
				Emoji:           &m.formData.Emoji,
				DurationMin:     &m.formData.Duration,
				ReminderEnabled: &m.formData.ReminderEnabled,
				ReminderTime:    &m.formData.ReminderTime,
			})
		}
		m.list.SetHabits(m.store.Habits())
		m.state = stateList
	case huh.StateAborted:
		m.state = stateList
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.store.Delete(m.deletingID)
			m.deletingID = ""
			m.list.SetHabits(m.store.Habits())
			m.state = stateList
		case "n", "N", "esc":
			m.deletingID = ""
			m.state = stateList
		}
	}
	return m, nil
}
