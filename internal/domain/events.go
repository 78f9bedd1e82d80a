package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDirectoryLoaded   EventType = "DirectoryLoaded"
	EventUserUpdated       EventType = "UserUpdated"
	EventAccessChanged     EventType = "AccessChanged"
	EventSelectorOpened    EventType = "SelectorOpened"
	EventSelectorCancelled EventType = "SelectorCancelled"
	EventCommandParsed     EventType = "CommandParsed"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DirectoryLoadedEvent is emitted once the user directory has been seeded
type DirectoryLoadedEvent struct {
	Source      string
	Users       int
	Permissions int
	Regions     int
}

func (e DirectoryLoadedEvent) Type() EventType { return EventDirectoryLoaded }

// UserUpdatedEvent is emitted after a user record is replaced in the store
type UserUpdatedEvent struct {
	User *User
}

func (e UserUpdatedEvent) Type() EventType { return EventUserUpdated }

// AccessChangedEvent is emitted when a selector save changes a user's access
type AccessChangedEvent struct {
	UserID  string
	Kind    AccessKind
	Added   []string
	Removed []string
}

func (e AccessChangedEvent) Type() EventType { return EventAccessChanged }

// SelectorOpenedEvent is emitted when a dual-list selector starts a lifecycle
type SelectorOpenedEvent struct {
	UserID   string
	Kind     AccessKind
	Options  int
	Selected int
}

func (e SelectorOpenedEvent) Type() EventType { return EventSelectorOpened }

// SelectorCancelledEvent is emitted when a selector is closed without saving
type SelectorCancelledEvent struct {
	UserID string
	Kind   AccessKind
}

func (e SelectorCancelledEvent) Type() EventType { return EventSelectorCancelled }

// CommandParsedEvent is emitted when an /adm command line was understood
type CommandParsedEvent struct {
	Input   string
	Summary string
}

func (e CommandParsedEvent) Type() EventType { return EventCommandParsed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	DataFile string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
