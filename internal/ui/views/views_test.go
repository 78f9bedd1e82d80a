package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"nexventory/internal/domain"
	"nexventory/internal/dualselect"
)

func options(labels ...string) []dualselect.Option {
	out := make([]dualselect.Option, 0, len(labels))
	for _, l := range labels {
		out = append(out, dualselect.Option{ID: dualselect.StringID(l), Label: l})
	}
	return out
}

func TestSelectorRendersEmptyColumns(t *testing.T) {
	r := NewSelectorRenderer(NewStyles())
	out := r.Render(SelectorViewState{Title: "Set Regions", Height: 5})

	assert.Contains(t, out, "Set Regions")
	assert.Contains(t, out, "Available (0)")
	assert.Contains(t, out, "Selected (0)")
	assert.Contains(t, out, "No items available")
	assert.Contains(t, out, "No items selected")
}

func TestSelectorRendersMarks(t *testing.T) {
	r := NewSelectorRenderer(NewStyles())
	marked := dualselect.StringID("BSB")
	out := r.Render(SelectorViewState{
		Title:     "Set Regions",
		Subject:   "ana (Ana Lima)",
		Available: options("BSB", "REC"),
		Selected:  options("GRU"),
		Height:    5,
		IsMarked: func(id dualselect.ID, list dualselect.List) bool {
			return list == dualselect.Available && id.Equal(marked)
		},
		CanAdd: true,
	})

	assert.Contains(t, out, "ana (Ana Lima)")
	assert.Contains(t, out, "[x] BSB")
	assert.Contains(t, out, "[ ] REC")
	assert.Contains(t, out, "[ ] GRU")
	assert.Contains(t, out, "Available (2)")
	assert.Contains(t, out, "Selected (1)")
}

func TestSelectorScrollIndicators(t *testing.T) {
	r := NewSelectorRenderer(NewStyles())
	labels := make([]string, 12)
	for i := range labels {
		labels[i] = fmt.Sprintf("perm.%02d", i)
	}
	out := r.Render(SelectorViewState{
		Available: options(labels...),
		Height:    4,
		Cursor:    [2]int{5, 0},
		Offset:    [2]int{2, 0},
	})

	assert.Contains(t, out, "↑ 2 more")
	assert.Contains(t, out, "↓ 6 more")
	assert.NotContains(t, out, "perm.01")
	assert.Contains(t, out, "perm.05")
}

func TestUserTable(t *testing.T) {
	table := NewUserTable(NewStyles())
	users := []*domain.User{
		{ID: "u1", Username: "ana", FirstName: "Ana", Role: domain.RoleAdmin, Active: true, Regions: []string{"GRU", "BSB"}},
		{ID: "u2", Username: "bruno", Role: domain.RoleUser},
	}

	all := table.Render(users, -1, 0, 0)
	assert.Contains(t, all, "USERNAME")
	assert.Contains(t, all, "ana")
	assert.Contains(t, all, "bruno")
	assert.NotContains(t, all, "more below")

	window := table.Render(users, 0, 0, 1)
	assert.Contains(t, window, "> ")
	assert.Contains(t, window, "1 more below")
	assert.NotContains(t, window, "bruno")

	assert.Contains(t, table.Render(nil, 0, 0, 5), "No users match")
}

func TestPopupOverlayCentersPanel(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	main := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := pr.RenderPopupOverlay(main, "XX", 10, 20)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, 9, strings.Index(lines[4], "XX"))
	assert.True(t, strings.HasSuffix(lines[4], "XX........."), "the right edge of the table survives")

	assert.Equal(t, "too big", pr.RenderPopupOverlay(main, "too big", 1, 3))
}

func TestRendererShowsSelectorOverTable(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:      120,
		Height:     40,
		Users:      []*domain.User{{ID: "u1", Username: "ana"}},
		TotalUsers: 1,
		Selector:   &SelectorViewState{Title: "Set Permissions", Height: 5},
	})
	assert.Contains(t, out, "Set Permissions")
	assert.Contains(t, out, "No items available")

	empty := r.Render(ViewState{Width: 80, Height: 20})
	assert.Contains(t, empty, "No users in the directory.")
}
