// Package selection keeps the ordered list of files the user picked.
//
// The list allows duplicates and keeps insertion order. Remove deletes every
// entry with the given path. State distinguishes "nothing picked yet" from
// "picked and then deleted everything"; the distinction only drives
// placeholder text in the UI.
package selection

import (
	"fmt"
	"strings"
	"sync"

	"ocrdesk/internal/domain"
)

// State describes whether the user has started a selection
type State int

const (
	// NotStarted is the state at startup and after Clear
	NotStarted State = iota
	// HasEntries is the state after the first Add, even if every entry was removed since
	HasEntries
)

func (s State) String() string {
	if s == HasEntries {
		return "has-entries"
	}
	return "not-started"
}

// Store is an in-memory, insertion-ordered list of selected paths
type Store struct {
	mu      sync.RWMutex
	state   State
	entries []domain.PathEntry
}

// NewStore creates an empty store in the NotStarted state
func NewStore() *Store {
	return &Store{}
}

// Add appends path unconditionally
func (s *Store) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = HasEntries
	s.entries = append(s.entries, domain.PathEntry{Path: path})
}

// Remove deletes every entry equal to path and returns how many were removed
func (s *Store) Remove(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if e.Path == path {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Zero the tail so removed entries are not kept alive by the backing array
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = domain.PathEntry{}
	}
	s.entries = kept
	return removed
}

// Clear discards every entry and returns to NotStarted
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.state = NotStarted
}

// Entries returns a copy of the list in insertion order
func (s *Store) Entries() []domain.PathEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PathEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Paths returns the selected paths in insertion order
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Path
	}
	return out
}

// At returns the entry at index i
func (s *Store) At(i int) (domain.PathEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.entries) {
		return domain.PathEntry{}, false
	}
	return s.entries[i], true
}

// Contains reports whether at least one entry equals path
func (s *Store) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Path == path {
			return true
		}
	}
	return false
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// State returns the current selection state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Summary returns the human-readable status line for the current selection
func (s *Store) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.state == NotStarted:
		return "Select a PDF to OCR"
	case len(s.entries) == 0:
		return "Selection is empty"
	}

	names := make([]string, 0, 3)
	for i, e := range s.entries {
		if i == 3 {
			names = append(names, "…")
			break
		}
		names = append(names, e.Name())
	}
	noun := "files"
	if len(s.entries) == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Selected %d %s: %s", len(s.entries), noun, strings.Join(names, ", "))
}
