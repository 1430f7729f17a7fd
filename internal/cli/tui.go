package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tinyhabits/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}
	defer ctx.Habits.Flush()

	p := tea.NewProgram(tui.New(ctx.Habits), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
