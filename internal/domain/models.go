package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// PathEntry represents a file chosen by the user
type PathEntry struct {
	Path string
}

// Name returns the file name shown in the grid
func (e PathEntry) Name() string {
	return filepath.Base(e.Path)
}

// Stem returns the file name without its final extension
func (e PathEntry) Stem() string {
	base := filepath.Base(e.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// ".pdf" is a hidden file named ".pdf", not an empty stem
		return base
	}
	return stem
}

// OutputPath returns the sibling file the OCR tool writes for this entry.
// The original extension is always replaced by ext.
func (e PathEntry) OutputPath(suffix, ext string) string {
	return filepath.Join(filepath.Dir(e.Path), e.Stem()+suffix+ext)
}

// OutcomeKind classifies the result of a single OCR invocation
type OutcomeKind int

const (
	OutcomeNotRun OutcomeKind = iota // never submitted
	OutcomePending                   // queued in a submitted batch
	OutcomeRunning
	OutcomeSuccess
	OutcomeExitFailure
	OutcomeSpawnFailure
	OutcomeTimedOut
	OutcomeCanceled
	OutcomeOutputInvalid
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNotRun:
		return "not run"
	case OutcomePending:
		return "pending"
	case OutcomeRunning:
		return "running"
	case OutcomeSuccess:
		return "done"
	case OutcomeExitFailure:
		return "failed"
	case OutcomeSpawnFailure:
		return "not started"
	case OutcomeTimedOut:
		return "timed out"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeOutputInvalid:
		return "bad output"
	default:
		return "unknown"
	}
}

// Outcome is the result of one OCR invocation
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int    // set for OutcomeExitFailure
	Err      error  // underlying error for every failure kind
	Output   string // combined stdout/stderr of the tool
}

// OK reports whether the invocation produced a usable output file
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Failed reports whether the invocation finished with any kind of failure
func (o Outcome) Failed() bool {
	switch o.Kind {
	case OutcomeExitFailure, OutcomeSpawnFailure, OutcomeTimedOut, OutcomeCanceled, OutcomeOutputInvalid:
		return true
	}
	return false
}

// Summary renders a one-line description suitable for a status bar
func (o Outcome) Summary() string {
	switch o.Kind {
	case OutcomeExitFailure:
		if line := LastLine(o.Output); line != "" {
			return fmt.Sprintf("exit %d: %s", o.ExitCode, line)
		}
		return fmt.Sprintf("exit %d", o.ExitCode)
	case OutcomeSpawnFailure, OutcomeOutputInvalid:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Kind, o.Err)
		}
	}
	return o.Kind.String()
}

// LastLine returns the last non-blank line of s
func LastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// JobResult is the per-entry result of a batch
type JobResult struct {
	Index      int // position in the batch
	Entry      PathEntry
	OutputPath string
	Outcome    Outcome
	Duration   time.Duration
}
