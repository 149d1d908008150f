package provisioning

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// StatusEventType identifies the step that emitted a status event.
type StatusEventType string

const (
	// StatusGitHubCreate is emitted once the repository exists.
	StatusGitHubCreate StatusEventType = "GITHUB_CREATE"
	// StatusGitHubPushed is emitted once the project is pushed.
	StatusGitHubPushed StatusEventType = "GITHUB_PUSHED"
	// StatusGitHubWebhook is emitted once the webhooks are registered.
	StatusGitHubWebhook StatusEventType = "GITHUB_WEBHOOK"
)

// Message returns a human readable description of the step.
func (t StatusEventType) Message() string {
	switch t {
	case StatusGitHubCreate:
		return "Creating your new GitHub repository"
	case StatusGitHubPushed:
		return "Pushing your customized booster code into the repository"
	case StatusGitHubWebhook:
		return "Setting up the build webhooks"
	default:
		return string(t)
	}
}

// StatusMessageEvent reports a completed step.
type StatusMessageEvent struct {
	ID        string
	Type      StatusEventType
	Data      map[string]any
	Timestamp time.Time
}

// NewStatusMessageEvent creates an event. data is copied.
func NewStatusMessageEvent(id string, t StatusEventType, data map[string]any) StatusMessageEvent {
	var copied map[string]any
	if len(data) > 0 {
		copied = maps.Clone(data)
	}
	return StatusMessageEvent{
		ID:        id,
		Type:      t,
		Data:      copied,
		Timestamp: time.Now(),
	}
}

// StatusEmitter receives status events.
type StatusEmitter interface {
	Emit(event StatusMessageEvent)
}

// EmitterFunc adapts a function to StatusEmitter.
type EmitterFunc func(event StatusMessageEvent)

// Emit implements StatusEmitter.
func (f EmitterFunc) Emit(event StatusMessageEvent) { f(event) }

// LogEmitter logs every event.
type LogEmitter struct {
	Logger logr.Logger
}

// Emit implements StatusEmitter.
func (e LogEmitter) Emit(event StatusMessageEvent) {
	kv := []any{"id", event.ID, "type", string(event.Type)}
	for _, k := range slices.Sorted(maps.Keys(event.Data)) {
		kv = append(kv, k, event.Data[k])
	}
	e.Logger.Info(event.Type.Message(), kv...)
}

// ChannelEmitter forwards events to a channel. Emit blocks while the
// channel is full.
type ChannelEmitter chan<- StatusMessageEvent

// Emit implements StatusEmitter.
func (c ChannelEmitter) Emit(event StatusMessageEvent) {
	c <- event
}

// MultiEmitter fans events out to several emitters in order.
type MultiEmitter []StatusEmitter

// Emit implements StatusEmitter.
func (m MultiEmitter) Emit(event StatusMessageEvent) {
	for _, e := range m {
		if e != nil {
			e.Emit(event)
		}
	}
}

// RecordingEmitter keeps every event in memory. Safe for concurrent use.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []StatusMessageEvent
}

// Emit implements StatusEmitter.
func (r *RecordingEmitter) Emit(event StatusMessageEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *RecordingEmitter) Events() []StatusMessageEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StatusMessageEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the types of the recorded events, in order.
func (r *RecordingEmitter) Types() []StatusEventType {
	events := r.Events()
	out := make([]StatusEventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
