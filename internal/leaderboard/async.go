package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/logging"
)

// Op names an asynchronous board operation.
type Op int

const (
	OpFetch Op = iota
	OpSubmit
	OpDeleteAll
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpSubmit:
		return "submit"
	case OpDeleteAll:
		return "delete-all"
	default:
		return "unknown"
	}
}

// Result reports a finished asynchronous call.
type Result struct {
	Op      Op
	Entries []Entry // OpFetch only
	Name    string  // OpSubmit only
	Score   int     // OpSubmit only
	Err     error
}

// Async runs board calls on goroutines so callers never wait on them.
// Finished calls are reported on Results; when nobody drains the channel
// and it is full, results are logged and dropped. Wait blocks until the
// calls already started have finished.
type Async struct {
	board   Leaderboard
	timeout time.Duration
	logger  *log.Logger
	results chan Result
	pending sync.WaitGroup
}

// NewAsync wraps board. A nil board behaves as Disabled.
func NewAsync(board Leaderboard, timeout time.Duration, logger *log.Logger) *Async {
	if board == nil {
		board = Disabled{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{
		board:   board,
		timeout: timeout,
		logger:  logging.OrDiscard(logger),
		results: make(chan Result, 8),
	}
}

// Board returns the wrapped board.
func (a *Async) Board() Leaderboard {
	return a.board
}

// Results delivers finished calls.
func (a *Async) Results() <-chan Result {
	return a.results
}

// Submit records a score in the background.
func (a *Async) Submit(name string, score int) {
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		err := a.board.Submit(ctx, name, score)
		if err != nil {
			a.logger.Error("score submit failed", "name", name, "score", score, "error", err)
		} else {
			a.logger.Info("score submitted", "name", name, "score", score)
		}
		a.deliver(Result{Op: OpSubmit, Name: name, Score: score, Err: err})
	}()
}

// FetchTop loads the top n entries in the background.
func (a *Async) FetchTop(n int) {
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		entries, err := a.board.FetchTop(ctx, n)
		if err != nil {
			a.logger.Error("leaderboard fetch failed", "error", err)
		}
		a.deliver(Result{Op: OpFetch, Entries: entries, Err: err})
	}()
}

// DeleteAll clears the board in the background.
func (a *Async) DeleteAll() {
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		err := a.board.DeleteAll(ctx)
		if err != nil {
			a.logger.Error("leaderboard reset failed", "error", err)
		} else {
			a.logger.Warn("leaderboard reset")
		}
		a.deliver(Result{Op: OpDeleteAll, Err: err})
	}()
}

// Wait blocks until every call started so far has finished, or ctx is
// done. Callers drain pending submits this way before closing the board.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.logger.Warn("leaderboard calls still pending", "error", ctx.Err())
		return ctx.Err()
	}
}

func (a *Async) deliver(r Result) {
	select {
	case a.results <- r:
	default:
		a.logger.Warn("leaderboard result dropped", "op", r.Op)
	}
}
