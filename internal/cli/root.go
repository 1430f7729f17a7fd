package cli

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

// Context is the application state handed to every command by kong.
type Context struct {
	Store  storage.Provider
	Habits *habits.Store
	Debug  bool
}

// load opens storage and installs the habit list, which also runs the daily
// reset sweep. Every command that touches habits calls this first.
func (c *Context) load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.Habits.Load()
	return nil
}

// findHabit resolves a habit by its display name.
func (c *Context) findHabit(name string) (models.Habit, error) {
	h, ok := c.Habits.GetByName(name)
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return h, nil
}
