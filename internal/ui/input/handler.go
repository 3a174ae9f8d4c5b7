package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/ui/input/modes"
	"ocrdesk/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
}

func New() *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModePicker] = modes.NewPickerMode()
	h.modes[types.ModeQuitConfirm] = modes.NewConfirmMode()

	return h
}

// HandleKey runs msg through the current mode. Mode changes are applied here
// and not returned; consumed is false when the mode ignored the key.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) (actions []types.Action, consumed bool) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, false
	}

	modeActions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil, false
	}

	var allActions []types.Action
	for _, action := range modeActions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		// Exit current mode
		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		}

		h.currentMode = changeMode.Mode

		// Enter new mode
		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
		}
	}

	return allActions, true
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ChangeMode switches modes outside of key handling, e.g. after the picker
// selected a file
func (h *Handler) ChangeMode(mode types.Mode) {
	h.currentMode = mode
}
