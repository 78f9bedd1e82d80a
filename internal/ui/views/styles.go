package views

import (
	"github.com/charmbracelet/lipgloss"

	"nexventory/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Header        lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Marked        lipgloss.Style
	Inactive      lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Panel         lipgloss.Style
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style
	ColumnTitle   lipgloss.Style
	Button        lipgloss.Style
	ButtonOff     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Marked:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Inactive:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Column: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ColumnFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		ColumnTitle: lipgloss.NewStyle().Bold(true),
		Button:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		ButtonOff:   lipgloss.NewStyle().Faint(true),
	}
}

// GetRoleColor returns the color used for a role badge
func GetRoleColor(role domain.Role) string {
	switch role {
	case domain.RoleMaster:
		return "203" // red
	case domain.RoleAdmin:
		return "214" // yellow
	case domain.RoleManager, domain.RoleSupervisor:
		return "33" // blue
	case domain.RoleUser:
		return "78" // green
	default:
		return "241"
	}
}
