package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"nexventory/internal/domain"
	"nexventory/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Users           []*domain.User
	TotalUsers      int
	SelectedIndex   int
	ViewportOffset  int
	ViewportHeight  int
	StatusMessage   string
	StatusIsError   bool
	FilterQuery     string
	SortKey         string
	SessionID       string
	Operator        string
	InputMode       string
	InputPrompt     string
	TextInput       string
	SortOptionIndex int
	ConfirmTarget   string
	Selector        *SelectorViewState
	HelpModel       help.Model
	HelpKeys        []key.Binding
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	userTable      *UserTable
	selectorRender *SelectorRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		userTable:      NewUserTable(styles),
		selectorRender: NewSelectorRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

// Styles exposes the style set
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	switch state.InputMode {
	case "filter", "command":
		content.WriteString(r.styles.Filter.Render(state.InputPrompt) + state.TextInput)
		content.WriteString("\n\n")
	case "sort":
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n\n")
	case "export-confirm":
		content.WriteString(r.styles.Confirm.Render(fmt.Sprintf("Write directory to '%s'? (y/n): ", state.ConfirmTarget)))
		content.WriteString("\n\n")
	}

	if state.TotalUsers == 0 {
		content.WriteString(r.styles.Dim.Render("No users in the directory."))
	} else {
		content.WriteString(r.userTable.Render(state.Users, state.SelectedIndex, state.ViewportOffset, state.ViewportHeight))
	}

	// Push the status and help lines to the bottom
	footer := r.renderFooter(state)
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // Main container padding
	if padding := availableLines - currentLines - lipgloss.Height(footer); padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	finalContent := r.styles.Main.MaxHeight(state.Height).Render(content.String())

	if state.Selector != nil {
		panel := r.selectorRender.Render(*state.Selector)
		return r.popupRender.RenderPopupOverlay(finalContent, panel, state.Height, state.Width)
	}
	return finalContent
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("nexventory")

	var right []string
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	right = append(right, r.styles.Dim.Render(fmt.Sprintf("%d/%d users", len(state.Users), state.TotalUsers)))
	if state.Operator != "" {
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("%s@%s", state.Operator, state.SessionID)))
	}
	rightContent := strings.Join(right, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(state.StatusMessage))
	}
	if len(state.HelpKeys) > 0 {
		lines = append(lines, state.HelpModel.ShortHelpView(state.HelpKeys))
	} else {
		lines = append(lines, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(lines, "\n")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	if state.SortOptionIndex >= 0 && state.SortOptionIndex < len(modes.SortOptions) {
		option := modes.SortOptions[state.SortOptionIndex]
		sortLine := fmt.Sprintf("Sort by: %s - %s", option.Name, option.Description)
		helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
		return sortLine + "\n" + helpLine
	}
	return ""
}
