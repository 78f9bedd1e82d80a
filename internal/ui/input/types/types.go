package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeCommand
	ModeSort
	ModeSelector
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeFilter:
		return "filter"
	case ModeCommand:
		return "command"
	case ModeSort:
		return "sort"
	case ModeSelector:
		return "selector"
	case ModeConfirm:
		return "confirm"
	default:
		return "normal"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalItems() int
	CurrentUserID() string
	FilterQuery() string
	CurrentSort() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
