package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Memory is an in-process board. Scores are lost on exit.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty board.
func NewMemory() *Memory {
	return &Memory{}
}

// FetchTop implements Leaderboard.
func (m *Memory) FetchTop(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = DefaultLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n = min(n, len(m.entries))
	out := make([]Entry, n)
	copy(out, m.entries[:n])
	return out, nil
}

// Submit implements Leaderboard.
func (m *Memory) Submit(_ context.Context, name string, score int) error {
	if err := ValidateEntry(name, score); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{Name: strings.TrimSpace(name), Score: score})
	// Stable keeps earlier submissions ahead on ties.
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].Score > m.entries[j].Score
	})
	return nil
}

// DeleteAll implements Leaderboard.
func (m *Memory) DeleteAll(context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
	return nil
}

// ValidateEntry checks a name and score before they are stored.
func ValidateEntry(name string, score int) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	case utf8.RuneCountInString(name) > MaxNameLength:
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidEntry, MaxNameLength)
	case score < 0:
		return fmt.Errorf("%w: negative score", ErrInvalidEntry)
	}
	return nil
}

var _ Leaderboard = (*Memory)(nil)
