package handlers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"nexventory/internal/eventbus"
	"nexventory/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state       *state.AppState
	reloadUsers func()
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, reloadUsers func()) *EventHandler {
	return &EventHandler{
		state:       appState,
		reloadUsers: reloadUsers,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DirectoryLoadedEvent:
		h.reloadUsers()
		h.state.SetStatus(fmt.Sprintf("Loaded %d users from %s", e.Users, e.Source))

	case eventbus.UserUpdatedEvent:
		h.reloadUsers()

	case eventbus.AccessChangedEvent:
		var parts []string
		if len(e.Added) > 0 {
			parts = append(parts, "added "+strings.Join(e.Added, ", "))
		}
		if len(e.Removed) > 0 {
			parts = append(parts, "removed "+strings.Join(e.Removed, ", "))
		}
		h.state.SetStatus(fmt.Sprintf("%s for %s: %s", e.Kind, e.UserID, strings.Join(parts, "; ")))

	case eventbus.ErrorEvent:
		h.state.SetError(fmt.Sprintf("Error: %s", e.Message))

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus(fmt.Sprintf("Config saved to %s", e.Path))
	}

	return nil
}
