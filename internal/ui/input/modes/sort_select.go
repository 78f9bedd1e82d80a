package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"nexventory/internal/ui/input/types"
)

// SortOptions available for sorting
var SortOptions = []struct {
	Key         string
	Name        string
	Description string
}{
	{"username", "Username", "Sort by username"},
	{"name", "Name", "Sort by full name"},
	{"role", "Role", "Sort by role, most privileged first"},
	{"status", "Status", "Sort by status, inactive and locked first"},
	{"created", "Created", "Sort by creation date, newest first"},
}

type SortSelectMode struct {
	sortIndex     int
	originalIndex int // Remember the original sort when entering
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	m.sortIndex = 0
	m.originalIndex = 0
	for i, option := range SortOptions {
		if option.Key == ctx.CurrentSort() {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Criteria: SortOptions[m.originalIndex].Key},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(SortOptions) - 1
		}
		return m.apply(), true

	case "down", "j":
		m.sortIndex++
		if m.sortIndex >= len(SortOptions) {
			m.sortIndex = 0
		}
		return m.apply(), true
	}

	return nil, true
}

// apply previews the highlighted sort immediately
func (m *SortSelectMode) apply() []types.Action {
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Criteria: SortOptions[m.sortIndex].Key},
	}
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
