// Package tui provides a Bubble Tea-based terminal UI for project provisioning.
package tui

import "github.com/imamik/launcher/internal/provisioning"

// StepMsg reports a provisioning step that completed.
type StepMsg struct {
	Step provisioning.StatusEventType
	Data map[string]any
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}

// stepMsgFromEvent converts a status event into a StepMsg.
func stepMsgFromEvent(e provisioning.StatusMessageEvent) StepMsg {
	return StepMsg{Step: e.Type, Data: e.Data}
}
