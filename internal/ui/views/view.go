package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellHeight is three content lines plus the border
const cellHeight = 5

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Columns       int
	Cells         []Cell
	SelectedIndex int
	Placeholder   string // shown instead of the grid when Cells is empty
	Summary       string // selection summary line
	Busy          bool
	Spinner       string
	Progress      string
	StatusMessage string
	StatusIsError bool
	ConfirmPrompt string
	Picker        string // file picker view, replaces the grid while open
	PickerDir     string
	ShowLog       bool
	LogTitle      string
	LogContent    string
	Help          string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cellRender  *CellRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cellRender:  NewCellRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowLog {
		return r.popupRender.RenderPopup(state.LogTitle, state.LogContent, state.Height, state.Width)
	}

	content := &strings.Builder{}

	// Title with busy indicator on the right
	logo := r.styles.Title.Render("PDF OCR App")
	if state.Busy {
		right := r.styles.StatusRunning.Render(fmt.Sprintf("%s Processing %s…", state.Spinner, state.Progress))
		padding := r.innerWidth(state) - lipgloss.Width(logo) - lipgloss.Width(right)
		if padding < 2 {
			padding = 2
		}
		logo = logo + strings.Repeat(" ", padding) + right
	}
	content.WriteString(logo)
	content.WriteString("\n\n")

	switch {
	case state.Picker != "":
		content.WriteString(r.styles.Confirm.Render("Select a file to OCR"))
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("  %s  (esc to cancel)", state.PickerDir)))
		content.WriteString("\n\n")
		content.WriteString(state.Picker)
	case len(state.Cells) == 0:
		content.WriteString(r.styles.Placeholder.Render(state.Placeholder))
	default:
		content.WriteString(r.renderGrid(state))
	}
	content.WriteString("\n")

	// Status lines
	if state.ConfirmPrompt != "" {
		content.WriteString(r.styles.Confirm.Render(state.ConfirmPrompt))
	} else if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError.MarginTop(1)
		}
		content.WriteString(style.Render(state.StatusMessage))
	} else {
		content.WriteString(r.styles.Status.Render(state.Summary))
	}

	if state.Help != "" && state.Picker == "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// innerWidth is the terminal width minus the main container padding
func (r *Renderer) innerWidth(state ViewState) int {
	w := state.Width
	if w <= 0 {
		w = 80
	}
	return w - r.styles.Main.GetHorizontalFrameSize()
}

// VisibleRows returns how many grid rows fit between the title and footer
func VisibleRows(height int) int {
	if height <= 0 {
		height = 24
	}
	// title(2) + status(2) + help(2) + container padding(2)
	rows := (height - 8) / cellHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// renderGrid lays out cells row by row, scrolled so the selection is visible
func (r *Renderer) renderGrid(state ViewState) string {
	cols := state.Columns
	if cols < 1 {
		cols = 1
	}
	cellW := r.innerWidth(state) / cols

	totalRows := (len(state.Cells) + cols - 1) / cols
	visible := VisibleRows(state.Height)
	selectedRow := state.SelectedIndex / cols
	offset := 0
	if selectedRow >= visible {
		offset = selectedRow - visible + 1
	}

	var rows []string
	for row := offset; row < totalRows && row < offset+visible; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(state.Cells) {
				break
			}
			cells = append(cells, r.cellRender.RenderCell(state.Cells[i], cellW, i == state.SelectedIndex))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if totalRows > visible {
		grid += "\n" + r.styles.Dim.Render(fmt.Sprintf("rows %d-%d of %d", offset+1, min(offset+visible, totalRows), totalRows))
	}
	return grid
}
