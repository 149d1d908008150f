package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/launcher/internal/provisioning"
)

// RunFunc runs provisioning, reporting completed steps to status.
type RunFunc func(ctx context.Context, status provisioning.StatusEmitter) error

// programOptions are appended to the Bubble Tea program options (for testing injection).
var programOptions []tea.ProgramOption

// RunProvisionTUI wraps run with a Bubble Tea TUI listing steps.
// Quitting the TUI cancels the context passed to run. RunProvisionTUI only
// returns once run has returned.
func RunProvisionTUI(ctx context.Context, title string, steps []provisioning.StatusEventType, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(title, steps)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, programOptions...)...)

	// Run provisioning in background goroutine
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ch := make(chan provisioning.StatusMessageEvent, 10)
		errCh := make(chan error, 1)
		go func() {
			defer close(ch)
			errCh <- run(ctx, provisioning.ChannelEmitter(ch))
		}()

		for event := range ch {
			p.Send(stepMsgFromEvent(event))
		}

		if err := <-errCh; err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()

	// The caller may remove the project directory once we return
	cancel()
	<-finished

	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// RenderSummary renders the final state of steps once (non-interactive mode).
func RenderSummary(title string, steps []provisioning.StatusEventType, events []provisioning.StatusMessageEvent, runErr error) string {
	m := NewModel(title, steps)
	for _, e := range events {
		m.completeStep(stepMsgFromEvent(e), e.Timestamp)
	}
	if runErr != nil {
		next, _ := m.Update(ErrMsg{Err: runErr})
		m = next.(Model)
	} else {
		m.Done = true
	}
	m.EstimatedRemaining = 0
	return renderView(m)
}
