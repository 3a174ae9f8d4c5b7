package views

import (
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

// RenderPopup centers popupContent in a width x height area. Content taller
// than the area keeps its last lines, which is where tool errors end up.
func (pr *PopupRenderer) RenderPopup(title, popupContent string, height, width int) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	boxW := width - 6
	if boxW > 100 {
		boxW = 100
	}
	maxLines := height - 6
	if maxLines < 3 {
		maxLines = 3
	}

	lines := strings.Split(strings.TrimRight(popupContent, "\n"), "\n")
	if len(lines) > maxLines {
		lines = append([]string{pr.styles.Dim.Render("…")}, lines[len(lines)-maxLines+1:]...)
	}

	body := pr.styles.Title.Render(title) + "\n" + strings.Join(lines, "\n") +
		"\n\n" + pr.styles.Dim.Render("esc/q/L to close")
	styled := pr.styles.LogBox.Width(boxW).Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}
