package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: types.Keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// The log popup swallows everything except its close keys
	if ctx.ShowingLog() {
		switch msg.String() {
		case "esc", "q", "L":
			return []types.Action{types.CloseLogAction{}}, true
		case "ctrl+c":
			return []types.Action{types.QuitAction{Force: true}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Force):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit):
		if ctx.Busy() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuitConfirm}}, true
		}
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.Left):
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case key.Matches(msg, m.keys.Right):
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case key.Matches(msg, m.keys.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Add):
		return []types.Action{
			types.OpenPickerAction{},
			types.ChangeModeAction{Mode: types.ModePicker},
		}, true

	case key.Matches(msg, m.keys.Delete):
		if path := ctx.CurrentPath(); path != "" {
			return []types.Action{types.DeleteEntryAction{Path: path}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Clear):
		return []types.Action{types.ClearSelectionAction{}}, true

	case key.Matches(msg, m.keys.Start):
		return []types.Action{types.StartBatchAction{}}, true

	case key.Matches(msg, m.keys.Log):
		if path := ctx.CurrentPath(); path != "" {
			return []types.Action{types.ShowLogAction{Path: path}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
