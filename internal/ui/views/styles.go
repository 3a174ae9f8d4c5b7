package views

import (
	"github.com/charmbracelet/lipgloss"

	"ocrdesk/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Placeholder   lipgloss.Style
	LogBox        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Cell          lipgloss.Style
	CellSelected  lipgloss.Style
	Overwrite     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusRunning lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2),
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main: lipgloss.NewStyle().Padding(1, 2),
		Cell: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}).
			Padding(0, 1),
		CellSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Overwrite:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
	}
}

// OutcomeStyle returns the style for an outcome badge
func (s *Styles) OutcomeStyle(kind domain.OutcomeKind) lipgloss.Style {
	switch kind {
	case domain.OutcomeSuccess:
		return s.StatusSuccess
	case domain.OutcomeRunning:
		return s.StatusRunning
	case domain.OutcomeCanceled, domain.OutcomeTimedOut:
		return s.StatusWarning
	case domain.OutcomeExitFailure, domain.OutcomeSpawnFailure, domain.OutcomeOutputInvalid:
		return s.StatusError
	default:
		return s.StatusLoading
	}
}
