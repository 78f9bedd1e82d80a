package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nexventory/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg clears the status line unless a newer message replaced it
type clearStatusMsg struct {
	seq int
}

// exportedMsg reports the result of writing the directory to disk
type exportedMsg struct {
	path string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// uiEvents are the domain events the model reacts to
var uiEvents = []eventbus.EventType{
	eventbus.EventDirectoryLoaded,
	eventbus.EventUserUpdated,
	eventbus.EventAccessChanged,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

// ForwardEvents delivers bus events to the program as EventMsg. The
// returned func unsubscribes.
func ForwardEvents(bus eventbus.EventBus, p *tea.Program) func() {
	var unsubs []func()
	for _, et := range uiEvents {
		unsubs = append(unsubs, bus.Subscribe(et, func(e eventbus.DomainEvent) {
			p.Send(EventMsg{Event: e})
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
