package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers popup over a greyed-out copy of main
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	popupW := lipgloss.Width(popupContent)
	popupH := lipgloss.Height(popupContent)
	if width <= 0 || height <= 0 || popupW >= width || popupH >= height {
		return popupContent
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}
	base = base[:height]

	x := (width - popupW) / 2
	y := (height - popupH) / 2
	for i, line := range strings.Split(popupContent, "\n") {
		row := y + i
		plain := ansiRE.ReplaceAllString(base[row], "")
		left := padRight(truncateRunes(plain, x), x)
		right := ""
		if r := []rune(plain); len(r) > x+lipgloss.Width(line) {
			right = string(r[x+lipgloss.Width(line):])
		}
		base[row] = pr.styles.Dim.Render(left) + line + pr.styles.Dim.Render(right)
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes so the popup stands out
func desaturateANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
