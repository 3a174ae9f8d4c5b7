package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/ui/input/types"
)

// ConfirmMode asks before quitting while a batch is running
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "quit-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c", "y", "Y":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Swallow everything else so a stray key cannot start or edit anything
	return nil, true
}
