package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/launcher/internal/provisioning"
	"github.com/imamik/launcher/internal/ui/benchmarks"
)

// errInterrupted is reported when the user quits before the steps finish.
var errInterrupted = errors.New("provisioning interrupted")

// Step is a provisioning step for display.
type Step struct {
	Name   string
	Key    provisioning.StatusEventType
	Detail string
	Done   bool
	Active bool
	Err    error

	startedAt time.Time
	duration  time.Duration
}

// Model is the Bubble Tea model for the provisioning view.
type Model struct {
	Title string
	Steps []Step

	// ETA
	EstimatedRemaining time.Duration
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewModel creates a model listing steps. The first step starts active.
func NewModel(title string, steps []provisioning.StatusEventType) Model {
	now := time.Now()
	m := Model{
		Title:     title,
		StartTime: now,
		Steps:     make([]Step, len(steps)),
	}
	for i, s := range steps {
		m.Steps[i] = Step{Name: s.Message(), Key: s}
	}
	if len(m.Steps) > 0 {
		m.Steps[0].Active = true
		m.Steps[0].startedAt = now
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.Done && m.Err == nil {
				m.Err = errInterrupted
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StepMsg:
		m.completeStep(msg, time.Now())
		m.updateETA(time.Now())

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA(time.Now())
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		for i := range m.Steps {
			if m.Steps[i].Active {
				m.Steps[i].Active = false
				m.Steps[i].Err = msg.Err
			}
		}
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.EstimatedRemaining = 0
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) completeStep(msg StepMsg, now time.Time) {
	idx := -1
	for i, step := range m.Steps {
		if step.Key == msg.Step {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous steps as done
	for i := 0; i <= idx; i++ {
		if !m.Steps[i].Done && m.Steps[i].startedAt.IsZero() {
			m.Steps[i].startedAt = now
		}
		if !m.Steps[i].Done {
			m.Steps[i].duration = now.Sub(m.Steps[i].startedAt)
		}
		m.Steps[i].Done = true
		m.Steps[i].Active = false
	}
	if loc, ok := msg.Data["location"]; ok {
		m.Steps[idx].Detail = fmt.Sprint(loc)
	}

	if idx+1 < len(m.Steps) {
		m.Steps[idx+1].Active = true
		m.Steps[idx+1].startedAt = now
	}
}

func (m *Model) updateETA(now time.Time) {
	keys := make([]string, len(m.Steps))
	completed := make(map[string]time.Duration)
	current := ""
	var elapsed time.Duration
	for i, s := range m.Steps {
		keys[i] = string(s.Key)
		switch {
		case s.Done:
			completed[keys[i]] = s.duration
		case s.Active:
			current = keys[i]
			elapsed = now.Sub(s.startedAt)
		}
	}
	if current == "" {
		m.EstimatedRemaining = 0
		return
	}
	m.EstimatedRemaining = benchmarks.EstimateRemaining(keys, current, elapsed, completed)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
