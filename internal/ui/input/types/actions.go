package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Selection actions
type OpenPickerAction struct{}

func (a OpenPickerAction) Type() string { return "open_picker" }

type DeleteEntryAction struct {
	Path string
}

func (a DeleteEntryAction) Type() string { return "delete_entry" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// Batch actions
type StartBatchAction struct{}

func (a StartBatchAction) Type() string { return "start_batch" }

// View actions
type ShowLogAction struct {
	Path string
}

func (a ShowLogAction) Type() string { return "show_log" }

type CloseLogAction struct{}

func (a CloseLogAction) Type() string { return "close_log" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// System actions
type QuitAction struct {
	Force bool // cancel a running batch without asking
}

func (a QuitAction) Type() string { return "quit" }
