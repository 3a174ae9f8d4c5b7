package ui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/eventbus"
	"ocrdesk/internal/ocr"
	"ocrdesk/internal/selection"
	"ocrdesk/internal/ui/input"
	inputtypes "ocrdesk/internal/ui/input/types"
	"ocrdesk/internal/ui/views"
)

const (
	placeholderNotStarted = "No files selected"
	placeholderEmptied    = "Selection is empty"
	statusTimeout         = 5 * time.Second
)

// BatchQueue accepts OCR batches. *ocr.Queue implements it.
type BatchQueue interface {
	Submit(entries []domain.PathEntry) (int64, error)
	CancelCurrent() bool
}

// PageCounter reports the page count of a selected file
type PageCounter interface {
	PageCount(path string) (int, error)
}

// fileInfo is what the probe learned about one selected path
type fileInfo struct {
	pages        int
	outputExists bool
}

// Model represents the UI state
type Model struct {
	cfg   config.Config
	store *selection.Store
	queue BatchQueue
	pages PageCounter

	// UI-specific state
	width   int
	height  int
	cursor  int
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model

	// Batch progress; busy is set on submit and cleared by BatchCompleted
	busy          bool
	batchID       int64
	progressIndex int
	progressTotal int

	// Per-path state, dropped when the path leaves the selection
	outcomes map[string]domain.Outcome
	files    map[string]fileInfo

	statusMessage string
	statusIsError bool
	statusSeq     int

	showLog     bool
	logTitle    string
	logContent  string
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	inputHandler *input.Handler
	renderer     *views.Renderer
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. pages may be nil to skip page counts.
func NewModel(cfg config.Config, store *selection.Store, queue BatchQueue, pages PageCounter) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		cfg:          cfg,
		store:        store,
		queue:        queue,
		pages:        pages,
		help:         help.New(),
		spinner:      s,
		outcomes:     make(map[string]domain.Outcome),
		files:        make(map[string]fileInfo),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		pager:        NewPager(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init sets the window title and probes any files selected on the command line
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("PDF OCR App")}
	for _, e := range m.store.Entries() {
		cmds = append(cmds, m.probe(e.Path))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.pickerSize())
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// handleKey routes a key through the input handler and runs the resulting actions
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, consumed := m.inputHandler.HandleKey(msg, m.context())
	if !consumed {
		if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
			return m.updatePicker(msg)
		}
		return nil
	}

	var cmds []tea.Cmd
	for _, action := range actions {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// context snapshots what the input modes may look at
func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		Index:   m.cursor,
		Paths:   m.store.Paths(),
		Cols:    m.cfg.UI.Columns,
		IsBusy:  m.busy,
		LogOpen: m.showLog,
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Printf("processAction: %s", action.Type())
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.OpenPickerAction:
		return m.openPicker()

	case inputtypes.DeleteEntryAction:
		return m.deleteEntry(a.Path)

	case inputtypes.ClearSelectionAction:
		m.store.Clear()
		m.outcomes = make(map[string]domain.Outcome)
		m.files = make(map[string]fileInfo)
		m.cursor = 0
		return m.setStatus("Selection cleared", false)

	case inputtypes.StartBatchAction:
		return m.startBatch()

	case inputtypes.ShowLogAction:
		return m.openLog(a.Path)

	case inputtypes.CloseLogAction:
		m.showLog = false
		m.logContent = ""

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.QuitAction:
		if m.busy && m.queue != nil && m.queue.CancelCurrent() {
			log.Printf("Quit requested, canceled batch %d", m.batchID)
		}
		return tea.Quit
	}

	return nil
}

// navigate moves the cursor around the grid, clamping at the edges
func (m *Model) navigate(direction string) {
	total := m.store.Len()
	if total == 0 {
		m.cursor = 0
		return
	}
	cols := m.cfg.UI.Columns
	if cols < 1 {
		cols = 1
	}

	next := m.cursor
	switch direction {
	case "left":
		next--
	case "right":
		next++
	case "up":
		next -= cols
	case "down":
		next += cols
	case "home":
		next = 0
	case "end":
		next = total - 1
	}
	if next < 0 || next >= total {
		return
	}
	m.cursor = next
}

func (m *Model) clampCursor() {
	if n := m.store.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// openPicker creates a fresh file picker rooted at the configured start dir
func (m *Model) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = m.cfg.UI.PickerTypes()
	fp.CurrentDirectory = m.cfg.UI.StartDir
	fp.ShowHidden = m.cfg.UI.ShowHidden
	fp.AutoHeight = true
	// Reopen in the directory of the last pick
	if e, ok := m.store.At(m.store.Len() - 1); ok {
		fp.CurrentDirectory = filepath.Dir(e.Path)
	}
	fp, _ = fp.Update(m.pickerSize())
	m.picker = fp
	return m.picker.Init()
}

// pickerSize is the window size the picker should lay itself out in
func (m *Model) pickerSize() tea.WindowSizeMsg {
	h := m.height
	if h <= 0 {
		h = 24
	}
	// Leave room for the title, prompt and container padding
	return tea.WindowSizeMsg{Width: m.width, Height: h - 4}
}

// updatePicker forwards msg to the picker and adds the file it selected
func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.inputHandler.ChangeMode(inputtypes.ModeNormal)
		return tea.Batch(cmd, m.addPath(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return tea.Batch(cmd, m.setStatus(fmt.Sprintf("%s is not a PDF or image", filepath.Base(path)), true))
	}
	return cmd
}

// addPath appends path to the selection and moves the cursor onto it
func (m *Model) addPath(path string) tea.Cmd {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m.store.Add(path)
	m.cursor = m.store.Len() - 1
	log.Printf("Selected %s", path)
	return tea.Batch(m.probe(path), m.setStatus(m.store.Summary(), false))
}

// deleteEntry removes every entry for path along with its outcome and log
func (m *Model) deleteEntry(path string) tea.Cmd {
	removed := m.store.Remove(path)
	if removed == 0 {
		return nil
	}
	delete(m.outcomes, path)
	delete(m.files, path)
	m.clampCursor()
	return m.setStatus(fmt.Sprintf("Removed %s", filepath.Base(path)), false)
}

// startBatch submits the current selection unless a batch is already running
func (m *Model) startBatch() tea.Cmd {
	if m.busy {
		return m.setStatus("Already processing, wait for the current batch to finish", false)
	}
	if m.queue == nil {
		return m.setStatus("OCR is not available", true)
	}

	entries := m.store.Entries()
	id, err := m.queue.Submit(entries)
	if errors.Is(err, ocr.ErrEmptySelection) {
		return m.setStatus("Nothing to do: no files selected", false)
	}
	if err != nil {
		log.Printf("Failed to submit batch: %v", err)
		return m.setStatus(fmt.Sprintf("Failed to start OCR: %v", err), true)
	}

	m.busy = true
	m.batchID = id
	m.progressIndex = 0
	m.progressTotal = len(entries)
	for _, e := range entries {
		m.outcomes[e.Path] = domain.Outcome{Kind: domain.OutcomePending}
	}
	m.statusMessage = ""
	return m.spinner.Tick
}

// openLog shows the tool output of the last run for path
func (m *Model) openLog(path string) tea.Cmd {
	outcome, ok := m.outcomes[path]
	if !ok || outcome.Kind == domain.OutcomeNotRun || outcome.Kind == domain.OutcomePending || outcome.Kind == domain.OutcomeRunning {
		return m.setStatus(fmt.Sprintf("No OCR log for %s yet", filepath.Base(path)), false)
	}

	content := m.buildLogContent(path, outcome)
	if !m.pager.Available() {
		m.showPopup(path, content)
		return nil
	}
	return m.fetchLogPager(path, content)
}

// buildLogContent renders the header and captured output of one run
func (m *Model) buildLogContent(path string, outcome domain.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Input:  %s\n", path)
	fmt.Fprintf(&b, "Output: %s\n", ocr.OutputPath(m.cfg.OCR, path))
	fmt.Fprintf(&b, "Result: %s\n", outcome.Summary())
	if outcome.Err != nil {
		fmt.Fprintf(&b, "Error:  %v\n", outcome.Err)
	}
	b.WriteString("\n")
	if out := strings.TrimRight(outcome.Output, "\n"); out != "" {
		b.WriteString(out)
	} else {
		b.WriteString("(no output)")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) showPopup(path, content string) {
	m.showLog = true
	m.logTitle = "OCR log: " + filepath.Base(path)
	m.logContent = content
}

// fetchLogPager returns a command that shows content in ov, pausing and resuming rendering
func (m *Model) fetchLogPager(path, content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return logPagerMsg{path: path, err: err}
	}
}

// probe counts pages and checks for an existing output off the UI goroutine
func (m *Model) probe(path string) tea.Cmd {
	pages := m.pages
	output := ocr.OutputPath(m.cfg.OCR, path)
	return func() tea.Msg {
		msg := probeMsg{path: path}
		if pages != nil {
			msg.pages, msg.err = pages.PageCount(path)
		}
		if _, err := os.Stat(output); err == nil {
			msg.outputExists = true
		}
		return msg
	}
}

// setStatus shows message in the status line and schedules its removal
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusMessage = message
	m.statusIsError = isError
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		// Let the tick loop die when idle or while the pager owns the screen
		if !m.busy || m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case probeMsg:
		if !m.store.Contains(msg.path) {
			return m, nil
		}
		if msg.err != nil {
			log.Printf("Could not inspect %s: %v", msg.path, msg.err)
		}
		m.files[msg.path] = fileInfo{pages: msg.pages, outputExists: msg.outputExists}
		return m, nil

	case logPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup silently
			log.Printf("Log pager failed for %s: %v, falling back to popup", msg.path, msg.err)
			if outcome, ok := m.outcomes[msg.path]; ok {
				m.showPopup(msg.path, m.buildLogContent(msg.path, outcome))
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.busy {
			return m, m.spinner.Tick
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	// Everything else (directory listings, etc.) belongs to the picker
	if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
		return m, m.updatePicker(msg)
	}
	return m, nil
}

// handleEvent applies a domain event from the OCR queue
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.BatchStartedEvent:
		if e.BatchID != m.batchID {
			return nil
		}
		m.progressTotal = e.Total

	case eventbus.JobStartedEvent:
		if e.BatchID != m.batchID {
			return nil
		}
		m.progressIndex = e.Index + 1
		m.progressTotal = e.Total
		if m.store.Contains(e.Entry.Path) {
			m.outcomes[e.Entry.Path] = domain.Outcome{Kind: domain.OutcomeRunning}
		}

	case eventbus.JobCompletedEvent:
		if e.BatchID != m.batchID {
			return nil
		}
		if path := e.Result.Entry.Path; m.store.Contains(path) {
			m.outcomes[path] = e.Result.Outcome
		}

	case eventbus.BatchCompletedEvent:
		if e.BatchID != m.batchID {
			return nil
		}
		m.busy = false
		failed := e.Failures()
		done := len(e.Results) - failed

		cmds := []tea.Cmd{m.setStatus(fmt.Sprintf("OCR finished: %d done, %d failed", done, failed), failed > 0)}
		// Outputs may exist now
		for _, entry := range m.store.Entries() {
			cmds = append(cmds, m.probe(entry.Path))
		}
		return tea.Batch(cmds...)

	case eventbus.ErrorEvent:
		log.Printf("Error event: %s: %v", e.Message, e.Err)
		return m.setStatus(e.Message, true)
	}
	return nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Columns:       m.cfg.UI.Columns,
		SelectedIndex: m.cursor,
		Summary:       m.store.Summary(),
		Busy:          m.busy,
		Spinner:       m.spinner.View(),
		Progress:      fmt.Sprintf("%d/%d", m.progressIndex, m.progressTotal),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		ShowLog:       m.showLog,
		LogTitle:      m.logTitle,
		LogContent:    m.logContent,
		Help:          m.help.View(inputtypes.Keys),
	}

	for _, e := range m.store.Entries() {
		info := m.files[e.Path]
		outcome := m.outcomes[e.Path]
		state.Cells = append(state.Cells, views.Cell{
			Path:       e.Path,
			Pages:      info.pages,
			Outcome:    outcome.Kind,
			Overwrites: info.outputExists,
		})
	}

	if m.store.State() == selection.NotStarted {
		state.Placeholder = placeholderNotStarted
	} else {
		state.Placeholder = placeholderEmptied
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModePicker:
		state.Picker = m.picker.View()
		state.PickerDir = m.picker.CurrentDirectory
	case inputtypes.ModeQuitConfirm:
		state.ConfirmPrompt = "A batch is running. Cancel it and quit? (y/n)"
	}

	return m.renderer.Render(state)
}
