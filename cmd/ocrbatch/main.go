// Command ocrbatch runs the OCR tool over the files given on the command line
// without the terminal UI and prints one result row per file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/inspect"
	"ocrdesk/internal/ocr"
	"ocrdesk/internal/selection"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning 0 on success, 1 when any
// file failed and 2 for usage errors
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ocrbatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a TOML or YAML config file")
	binary := fs.String("bin", "", "OCR tool to run (overrides ocr.binary)")
	timeout := fs.Duration("timeout", 0, "Per-file timeout (overrides ocr.timeout)")
	noVerify := fs.Bool("no-verify", false, "Skip validating the produced PDFs")
	quiet := fs.Bool("q", false, "Do not print progress")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ocrbatch [flags] file ...\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.SetOutput(stderr)
	log.SetFlags(0)
	log.SetPrefix("ocrbatch: ")
	if *quiet {
		log.SetOutput(io.Discard)
	}

	cfg, _, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 2
	}
	if env := os.Getenv("OCRDESK_OCR_BIN"); env != "" {
		cfg.OCR.Binary = env
	}
	if *binary != "" {
		cfg.OCR.Binary = *binary
	}
	if *timeout > 0 {
		cfg.OCR.Timeout = config.Duration{Duration: *timeout}
	}
	if *noVerify {
		cfg.OCR.VerifyOutput = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid options: %v\n", err)
		return 2
	}

	store := selection.NewStore()
	for _, arg := range fs.Args() {
		store.Add(arg)
	}
	if store.Len() == 0 {
		fmt.Fprintln(stderr, ocr.ErrEmptySelection)
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier ocr.Verifier
	if cfg.OCR.VerifyOutput {
		verifier = inspect.New()
	}
	invoker := ocr.NewInvoker(cfg.OCR, ocr.ExecRunner{}, verifier)

	start := time.Now()
	results := invoker.Run(ctx, store.Entries(), progress{})

	fmt.Fprintln(stdout, renderResults(results))

	failed := 0
	for _, r := range results {
		if !r.Outcome.OK() {
			failed++
		}
	}
	log.Printf("%d file(s) in %s, %d failed", len(results), time.Since(start).Round(time.Millisecond), failed)

	if errors.Is(ctx.Err(), context.Canceled) {
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// progress logs each file as the invoker reaches it
type progress struct{}

func (progress) JobStarted(index, total int, entry domain.PathEntry, output string) {
	log.Printf("[%d/%d] %s -> %s", index+1, total, entry.Path, filepath.Base(output))
}

func (progress) JobCompleted(total int, result domain.JobResult) {
	if !result.Outcome.OK() {
		log.Printf("[%d/%d] %s: %s", result.Index+1, total, result.Entry.Name(), result.Outcome.Summary())
	}
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// renderResults formats one row per job
func renderResults(results []domain.JobResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Entry.Path,
			r.Outcome.Summary(),
			r.OutputPath,
			r.Duration.Round(time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("INPUT", "RESULT", "OUTPUT", "TIME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow || row >= len(results) || col != 1 {
				return style
			}
			if results[row].Outcome.OK() {
				return style.Inherit(okStyle)
			}
			return style.Inherit(failStyle)
		})
	return t.String()
}
