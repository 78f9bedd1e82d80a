package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nexventory/internal/domain"
)

type column struct {
	title string
	width int
}

var userColumns = []column{
	{"USERNAME", 16},
	{"NAME", 24},
	{"ROLE", 11},
	{"ACTIVE", 7},
	{"REGIONS", 8},
	{"PERMS", 6},
}

// UserTable renders users as fixed-width rows
type UserTable struct {
	styles *Styles
}

// NewUserTable creates a new user table renderer
func NewUserTable(styles *Styles) *UserTable {
	return &UserTable{styles: styles}
}

// cell pads or truncates s to width
func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

// RenderHeader renders the column titles
func (t *UserTable) RenderHeader() string {
	cells := make([]string, len(userColumns))
	for i, c := range userColumns {
		cells[i] = cell(c.title, c.width)
	}
	return t.styles.Header.Render(strings.Join(cells, " "))
}

// RenderRow renders one user
func (t *UserTable) RenderRow(u *domain.User, isSelected bool) string {
	active := "yes"
	if !u.Active {
		active = "no"
	}
	role := lipgloss.NewStyle().Foreground(lipgloss.Color(GetRoleColor(u.Role))).Render(cell(string(u.Role), userColumns[2].width))
	cells := []string{
		cell(u.Username, userColumns[0].width),
		cell(u.FullName(), userColumns[1].width),
		role,
		cell(active, userColumns[3].width),
		cell(strconv.Itoa(len(u.Regions)), userColumns[4].width),
		cell(strconv.Itoa(len(u.Permissions)), userColumns[5].width),
	}
	line := strings.Join(cells, " ")

	prefix := "  "
	if isSelected {
		prefix = t.styles.Highlight.Render("> ")
	}
	switch {
	case isSelected:
		line = t.styles.HighlightBg.Render(line)
	case !u.Active:
		line = t.styles.Dim.Render(line)
	}
	return prefix + line
}

// Render renders a window of users. cursor is -1 when no row is selected;
// height <= 0 renders every row without scroll indicators.
func (t *UserTable) Render(users []*domain.User, cursor, offset, height int) string {
	lines := []string{"  " + t.RenderHeader()}
	if len(users) == 0 {
		lines = append(lines, t.styles.Dim.Render("  No users match"))
		return strings.Join(lines, "\n")
	}

	if height <= 0 {
		for i, u := range users {
			lines = append(lines, t.RenderRow(u, i == cursor))
		}
		return strings.Join(lines, "\n")
	}

	if offset > 0 {
		lines = append(lines, t.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more above ↑", offset)))
	}
	end := offset + height
	if end > len(users) {
		end = len(users)
	}
	for i := offset; i < end; i++ {
		lines = append(lines, t.RenderRow(users[i], i == cursor))
	}
	if below := len(users) - end; below > 0 {
		lines = append(lines, t.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}
