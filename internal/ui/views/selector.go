package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nexventory/internal/dualselect"
)

const selectorColumnWidth = 28

// SelectorViewState is what the selector panel needs to render
type SelectorViewState struct {
	Title     string
	Subject   string
	Available []dualselect.Option
	Selected  []dualselect.Option
	Focus     dualselect.List
	Cursor    [2]int
	Offset    [2]int
	Height    int // rows per column
	IsMarked  func(dualselect.ID, dualselect.List) bool
	CanAdd    bool
	CanRemove bool
}

// SelectorRenderer draws the two-column transfer panel
type SelectorRenderer struct {
	styles *Styles
}

// NewSelectorRenderer creates a new selector renderer
func NewSelectorRenderer(styles *Styles) *SelectorRenderer {
	return &SelectorRenderer{styles: styles}
}

// Render renders the whole panel
func (r *SelectorRenderer) Render(s SelectorViewState) string {
	available := r.renderColumn(s, dualselect.Available, s.Available, "Available", "No items available")
	selected := r.renderColumn(s, dualselect.Selected, s.Selected, "Selected", "No items selected")

	add := r.styles.ButtonOff.Render(" > ")
	if s.CanAdd {
		add = r.styles.Button.Render(" > ")
	}
	remove := r.styles.ButtonOff.Render(" < ")
	if s.CanRemove {
		remove = r.styles.Button.Render(" < ")
	}
	buttons := lipgloss.NewStyle().
		Height(lipgloss.Height(available)).
		AlignVertical(lipgloss.Center).
		Padding(0, 1).
		Render(add + "\n\n" + remove)

	title := r.styles.Title.Render(s.Title)
	if s.Subject != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, r.styles.Dim.Render("  "+s.Subject))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, available, buttons, selected)
	hints := r.styles.Help.Render("tab switch • space mark • > add • < remove • enter save • esc cancel")

	return r.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, hints))
}

func (r *SelectorRenderer) renderColumn(s SelectorViewState, list dualselect.List, items []dualselect.Option, name, empty string) string {
	focused := s.Focus == list
	height := s.Height
	if height < 1 {
		height = 1
	}

	var lines []string
	header := fmt.Sprintf("%s (%d)", name, len(items))
	lines = append(lines, r.styles.ColumnTitle.Render(header))

	if len(items) == 0 {
		lines = append(lines, r.styles.Dim.Render(empty))
	} else {
		offset := s.Offset[list]
		end := offset + height
		if end > len(items) {
			end = len(items)
		}
		if offset > 0 {
			lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", offset)))
		}
		for i := offset; i < end; i++ {
			lines = append(lines, r.renderItem(s, list, items[i], focused && i == s.Cursor[list]))
		}
		if below := len(items) - end; below > 0 {
			lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", below)))
		}
	}

	style := r.styles.Column
	if focused {
		style = r.styles.ColumnFocused
	}
	// +3 leaves room for the title row and both scroll indicators
	return style.Width(selectorColumnWidth).Height(height + 3).Render(strings.Join(lines, "\n"))
}

func (r *SelectorRenderer) renderItem(s SelectorViewState, list dualselect.List, opt dualselect.Option, atCursor bool) string {
	marked := s.IsMarked != nil && s.IsMarked(opt.ID, list)
	box := "[ ] "
	if marked {
		box = "[x] "
	}
	label := opt.Label
	if label == "" {
		label = opt.ID.Key()
	}
	line := lipgloss.NewStyle().MaxWidth(selectorColumnWidth - 2).Render(box + label)
	if marked {
		line = r.styles.Marked.Render(line)
	}
	if atCursor {
		line = r.styles.HighlightBg.Render(line)
	}
	return line
}
