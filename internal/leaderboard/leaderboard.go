// Package leaderboard defines the score board capability used by runs and
// menus, plus adapters: a no-op board, an asynchronous wrapper, and a
// websocket client and server.
package leaderboard

import (
	"context"
	"errors"
)

// DefaultLimit is the number of entries shown on the board.
const DefaultLimit = 5

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 15

// Errors reported by boards.
var (
	ErrUnauthorized = errors.New("leaderboard: unauthorized")
	ErrUnavailable  = errors.New("leaderboard: unavailable")
	ErrInvalidEntry = errors.New("leaderboard: invalid entry")
)

// Entry is one board row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Leaderboard stores and ranks scores.
type Leaderboard interface {
	// FetchTop returns up to n entries, highest score first.
	FetchTop(ctx context.Context, n int) ([]Entry, error)
	// Submit records a score.
	Submit(ctx context.Context, name string, score int) error
	// DeleteAll removes every score.
	DeleteAll(ctx context.Context) error
}

// Disabled is the board used when nothing is configured.
// Fetches return nothing and writes are dropped.
type Disabled struct{}

// FetchTop returns no entries.
func (Disabled) FetchTop(context.Context, int) ([]Entry, error) { return nil, nil }

// Submit does nothing.
func (Disabled) Submit(context.Context, string, int) error { return nil }

// DeleteAll does nothing.
func (Disabled) DeleteAll(context.Context) error { return nil }

var _ Leaderboard = Disabled{}
