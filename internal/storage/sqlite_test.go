package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/skyrunner/internal/leaderboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, s := range []struct {
		name  string
		score int
	}{{"ada", 100}, {"bob", 50}, {"cy", 200}} {
		if _, err := store.SaveScore(ctx, s.name, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Name != "cy" {
		t.Errorf("Expected top name cy, got %q", scores[0].Name)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := store.SaveScore(ctx, "p", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ctx, 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 70 || scores[4].Score != 30 {
		t.Errorf("unexpected ordering: %+v", scores)
	}

	// Non-positive limits fall back to the default board size
	scores, err = store.TopScores(ctx, 0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(scores) != leaderboard.DefaultLimit {
		t.Errorf("TopScores(0) returned %d rows, want %d", len(scores), leaderboard.DefaultLimit)
	}
}

func TestStoreTiesKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, "first", 10)
	store.SaveScore(ctx, "second", 10)

	scores, err := store.TopScores(ctx, 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Name != "first" || scores[1].Name != "second" {
		t.Errorf("tie order = %q, %q", scores[0].Name, scores[1].Name)
	}
}

func TestStoreRejectsInvalidEntries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		score int
	}{
		{"empty", "", 10},
		{"whitespace", "   ", 10},
		{"too long", "abcdefghijklmnop", 10},
		{"negative", "ada", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveScore(ctx, tt.input, tt.score)
			if !errors.Is(err, leaderboard.ErrInvalidEntry) {
				t.Errorf("SaveScore(%q, %d) error = %v, want ErrInvalidEntry", tt.input, tt.score, err)
			}
		})
	}

	// Fifteen runes is the limit, multibyte included
	if _, err := store.SaveScore(ctx, "ééééééééééééééé", 1); err != nil {
		t.Errorf("15-rune name rejected: %v", err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Empty database
	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty database, got %d", high)
	}

	store.SaveScore(ctx, "ada", 100)
	store.SaveScore(ctx, "bob", 300)
	store.SaveScore(ctx, "cy", 200)

	high, err = store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, "ada", 100)
	store.SaveScore(ctx, "bob", 200)

	if err := store.ClearScores(ctx); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(ctx, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreGetStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", stats)
	}

	store.SaveScore(ctx, "ada", 100)
	store.SaveScore(ctx, "bob", 200)
	store.SaveScore(ctx, "cy", 300)

	stats, err = store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("Expected 3 runs, got %d", stats.Runs)
	}
	if stats.HighScore != 300 {
		t.Errorf("Expected high score 300, got %d", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected avg score 200, got %f", stats.AvgScore)
	}
	if stats.TotalScore != 600 {
		t.Errorf("Expected total score 600, got %d", stats.TotalScore)
	}
}

func TestStoreAsLeaderboard(t *testing.T) {
	var board leaderboard.Leaderboard = openTestStore(t)
	ctx := context.Background()

	if err := board.Submit(ctx, "ada", 42); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if err := board.Submit(ctx, "bob", 7); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	entries, err := board.FetchTop(ctx, 5)
	if err != nil {
		t.Fatalf("FetchTop() failed: %v", err)
	}
	want := []leaderboard.Entry{{Name: "ada", Score: 42}, {Name: "bob", Score: 7}}
	if len(entries) != len(want) {
		t.Fatalf("FetchTop() = %+v, want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}

	if err := board.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() failed: %v", err)
	}
	entries, _ = board.FetchTop(ctx, 5)
	if len(entries) != 0 {
		t.Errorf("Expected empty board after DeleteAll, got %+v", entries)
	}
}

func TestStoreCreatesNestedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore(ctx, "ada", 77)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, _ := store.HighScore(ctx)
	if high != 77 {
		t.Errorf("Expected persisted high score 77, got %d", high)
	}
}

func TestAsyncSubmitDrainedBeforeClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	a := leaderboard.NewAsync(store, time.Second, nil)
	a.Submit("ada", 7)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Wait(ctx); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	store.Close()

	r := <-a.Results()
	if r.Err != nil {
		t.Fatalf("submit failed: %v", r.Err)
	}

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	entries, err := store.FetchTop(ctx, 5)
	if err != nil {
		t.Fatalf("FetchTop() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "ada" || entries[0].Score != 7 {
		t.Errorf("entries = %+v, expected ada 7", entries)
	}
}
