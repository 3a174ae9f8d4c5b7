package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ocrdesk/internal/domain"
)

// Cell is one selected file in the grid
type Cell struct {
	Path       string
	Pages      int // 0 while unknown
	Outcome    domain.OutcomeKind
	Overwrites bool // the output file already exists
}

// CellRenderer handles rendering of grid cells
type CellRenderer struct {
	styles *Styles
}

// NewCellRenderer creates a new cell renderer
func NewCellRenderer(styles *Styles) *CellRenderer {
	return &CellRenderer{styles: styles}
}

// Icon returns the glyph shown for a file type
func Icon(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "▤"
	}
	return "▣"
}

// RenderCell renders a single grid cell of the given outer width
func (r *CellRenderer) RenderCell(cell Cell, width int, isSelected bool) string {
	style := r.styles.Cell
	if isSelected {
		style = r.styles.CellSelected
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 8 {
		inner = 8
	}

	name := truncate(filepath.Base(cell.Path), inner-2)
	header := fmt.Sprintf("%s %s", Icon(cell.Path), name)
	if isSelected {
		header = lipgloss.NewStyle().Bold(true).Render(header)
	}

	var meta []string
	switch cell.Pages {
	case 0:
		meta = append(meta, "? pages")
	case 1:
		meta = append(meta, "1 page")
	default:
		meta = append(meta, fmt.Sprintf("%d pages", cell.Pages))
	}
	if cell.Outcome != domain.OutcomeNotRun {
		meta = append(meta, r.styles.OutcomeStyle(cell.Outcome).Render(cell.Outcome.String()))
	}

	lines := []string{header, r.styles.Dim.Render(strings.Join(meta, " · "))}
	if cell.Overwrites {
		lines = append(lines, r.styles.Overwrite.Render("overwrites output"))
	} else {
		lines = append(lines, "")
	}

	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 2 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
