package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"nexventory/internal/ui/input/types"
)

// SelectorMode drives an open dual-list selector. It is modal: every key
// is consumed so nothing leaks to the users table underneath.
type SelectorMode struct{}

func NewSelectorMode() *SelectorMode {
	return &SelectorMode{}
}

func (m *SelectorMode) Name() string {
	return "selector"
}

func (m *SelectorMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.FocusColumnAction{Column: "available"}}
}

func (m *SelectorMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectorMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return []types.Action{
			types.CancelSelectorAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyEnter:
		return []types.Action{
			types.SaveSelectorAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyTab, tea.KeyShiftTab:
		return []types.Action{types.FocusColumnAction{Column: "next"}}, true
	case tea.KeySpace:
		return []types.Action{types.ToggleMarkAction{}}, true
	}

	switch msg.String() {
	case "up", "k":
		return []types.Action{types.SelectorNavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.SelectorNavigateAction{Direction: "down"}}, true
	case "home", "g":
		return []types.Action{types.SelectorNavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.SelectorNavigateAction{Direction: "end"}}, true
	case "left", "h":
		return []types.Action{types.FocusColumnAction{Column: "available"}}, true
	case "right", "l":
		return []types.Action{types.FocusColumnAction{Column: "selected"}}, true
	case " ":
		return []types.Action{types.ToggleMarkAction{}}, true
	case ">":
		return []types.Action{types.CommitAddAction{}}, true
	case "<":
		return []types.Action{types.CommitRemoveAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, true
}
