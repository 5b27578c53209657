package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, deps Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(ctx, deps), opts...)

	// Debounced searches land on a timer goroutine; the send must not block
	// an Update that triggered the change itself.
	deps.State.View.OnChange(func() {
		go p.Send(viewChangedMsg{})
	})

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	if m, ok := final.(Model); ok && m.LoggedOut() {
		return ErrNotAuthenticated
	}
	return nil
}
