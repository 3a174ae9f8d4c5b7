package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"ocrdesk/internal/config"
	"ocrdesk/internal/eventbus"
	"ocrdesk/internal/inspect"
	"ocrdesk/internal/ocr"
	"ocrdesk/internal/selection"
	"ocrdesk/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		logPath    string
		startDir   string
		binary     string
		columns    int
	)
	flag.StringVar(&configPath, "config", "", "Path to a TOML or YAML config file")
	flag.StringVar(&logPath, "log", "", "Log file (default: ocrdesk.log in the user cache directory)")
	flag.StringVar(&startDir, "dir", "", "Directory the file picker starts in")
	flag.StringVar(&startDir, "d", "", "Directory the file picker starts in (shorthand)")
	flag.StringVar(&binary, "bin", "", "OCR tool to run (overrides ocr.binary)")
	flag.IntVar(&columns, "columns", 0, "Number of grid columns")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file ...]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, usedConfig, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(&cfg, binary, startDir, columns)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := openLogFile(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if usedConfig != "" {
		log.Printf("Loaded config from %s", usedConfig)
	}
	log.Printf("OCR tool: %s", cfg.OCR.Binary)

	// Create event bus
	bus := eventbus.New()

	// Initialize services
	inspector := inspect.New()
	var verifier ocr.Verifier
	if cfg.OCR.VerifyOutput {
		verifier = inspector
	}
	invoker := ocr.NewInvoker(cfg.OCR, ocr.ExecRunner{}, verifier)
	queue := ocr.NewQueue(invoker, bus, 4)

	// Files named on the command line start out selected
	store := selection.NewStore()
	for _, arg := range flag.Args() {
		if abs, err := filepath.Abs(arg); err == nil {
			arg = abs
		}
		store.Add(arg)
	}

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(cfg, store, queue, inspector)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI; sends block, events are never dropped
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		eventChan <- e
	}
	for _, et := range []eventbus.EventType{
		eventbus.EventBatchStarted,
		eventbus.EventJobStarted,
		eventbus.EventJobCompleted,
		eventbus.EventBatchCompleted,
		eventbus.EventError,
	} {
		bus.Subscribe(et, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-sigChan
		log.Printf("Received %s, shutting down", sig)
		queue.CancelCurrent()
		p.Quit()
	}()

	// Run the UI
	log.Printf("Starting UI...")
	_, runErr := p.Run()

	// Cleanup: stop the worker first so its last events still reach the bus
	queue.Close()
	bus.Close()
	close(eventChan)

	if runErr != nil {
		log.Printf("Error running program: %v", runErr)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// applyOverrides layers the environment and flags over the loaded config
func applyOverrides(cfg *config.Config, binary, startDir string, columns int) {
	if env := os.Getenv("OCRDESK_OCR_BIN"); env != "" {
		cfg.OCR.Binary = env
	}
	if binary != "" {
		cfg.OCR.Binary = binary
	}
	if startDir != "" {
		if abs, err := filepath.Abs(startDir); err == nil {
			startDir = abs
		}
		cfg.UI.StartDir = startDir
	}
	if columns > 0 {
		cfg.UI.Columns = columns
	}
}

// openLogFile opens path for appending, defaulting to the user cache directory
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}
		dir := filepath.Join(cacheDir, "ocrdesk")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, "ocrdesk.log")
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
