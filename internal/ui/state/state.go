package state

import (
	"nexventory/internal/command"
	"nexventory/internal/domain"
	"nexventory/internal/dualselect"
	"nexventory/internal/ui/logic"
)

// SelectorState is the UI side of an open selector: which kind and user it
// edits, the focused column and a cursor per column
type SelectorState struct {
	Kind    domain.AccessKind
	UserID  string
	Subject string
	Focus   dualselect.List
	Cursor  [2]int
	Offset  [2]int
}

// AppState contains all the application state
type AppState struct {
	// User data
	Users        []*domain.User // all users as loaded from the store
	VisibleUsers []*domain.User // filtered and sorted, as displayed

	// Selection state
	SelectedIndex int

	// UI state
	ViewportOffset  int
	ViewportHeight  int
	StatusMessage   string
	StatusIsError   bool
	SortOptionIndex int
	Sort            logic.SortMode
	FilterQuery     string

	// Last /adm command drafted from the command line
	LastCommand *command.Transaction

	// Open selector, nil when closed
	Selector *SelectorState
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Users:          make([]*domain.User, 0),
		VisibleUsers:   make([]*domain.User, 0),
		ViewportHeight: 20, // Default
	}
}

// SetUsers replaces the user list, keeping the cursor on the same user
// where possible
func (s *AppState) SetUsers(users []*domain.User) {
	current := ""
	if u := s.CurrentUser(); u != nil {
		current = u.ID
	}
	s.Users = users
	s.Refresh()
	if current != "" {
		s.SelectUser(current)
	}
}

// Refresh recomputes the visible users from the filter and sort
func (s *AppState) Refresh() {
	visible := logic.NewUserFilter().Apply(s.Users, s.FilterQuery)
	logic.SortUsers(visible, s.Sort)
	s.VisibleUsers = visible
	if s.SelectedIndex >= len(visible) {
		s.SelectedIndex = len(visible) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// CurrentUser returns the user under the cursor, nil for an empty list
func (s *AppState) CurrentUser() *domain.User {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.VisibleUsers) {
		return nil
	}
	return s.VisibleUsers[s.SelectedIndex]
}

// SelectUser moves the cursor to the user with id if it is visible
func (s *AppState) SelectUser(id string) bool {
	for i, u := range s.VisibleUsers {
		if u.ID == id {
			s.SelectedIndex = i
			return true
		}
	}
	return false
}

// SetStatus shows an informational message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// SetError shows an error message
func (s *AppState) SetError(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = true
}

// ClearStatus clears the status line
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}
