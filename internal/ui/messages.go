package ui

import (
	"ocrdesk/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// probeMsg carries what was learned about a selected file off the UI goroutine
type probeMsg struct {
	path         string
	pages        int
	outputExists bool
	err          error
}

// logPagerMsg contains the result of showing a log in the pager
type logPagerMsg struct {
	path string
	err  error
}

// clearStatusMsg expires the status message with the same sequence number
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals that the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the pager has returned the terminal
type resumeRenderingMsg struct{}
