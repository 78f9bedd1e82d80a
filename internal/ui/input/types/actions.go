package types

import "nexventory/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ExportAction struct{}

func (a ExportAction) Type() string { return "export" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

// Selector actions
type OpenSelectorAction struct {
	Kind   domain.AccessKind
	UserID string
}

func (a OpenSelectorAction) Type() string { return "open_selector" }

type SelectorNavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a SelectorNavigateAction) Type() string { return "selector_navigate" }

type FocusColumnAction struct {
	Column string // "available", "selected" or "next"
}

func (a FocusColumnAction) Type() string { return "focus_column" }

type ToggleMarkAction struct{}

func (a ToggleMarkAction) Type() string { return "toggle_mark" }

type CommitAddAction struct{}

func (a CommitAddAction) Type() string { return "commit_add" }

type CommitRemoveAction struct{}

func (a CommitRemoveAction) Type() string { return "commit_remove" }

type SaveSelectorAction struct{}

func (a SaveSelectorAction) Type() string { return "save_selector" }

type CancelSelectorAction struct{}

func (a CancelSelectorAction) Type() string { return "cancel_selector" }
