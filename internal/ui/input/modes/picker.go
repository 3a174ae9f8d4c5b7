package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/ui/input/types"
)

// PickerMode is active while the file picker is open. Keys it does not
// consume are forwarded to the picker by the model.
type PickerMode struct{}

func NewPickerMode() *PickerMode {
	return &PickerMode{}
}

func (m *PickerMode) Name() string {
	return "picker"
}

func (m *PickerMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PickerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q":
		// Cancelling the dialog leaves the selection untouched
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, false
}
