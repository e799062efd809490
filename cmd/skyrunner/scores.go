package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/leaderboard"
)

var (
	flagLimit int
	flagYes   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores from the local database, or from the remote
leaderboard when --board is set.

Examples:
  skyrunner scores
  skyrunner scores --limit 10
  skyrunner scores --board ws://scores.example.com/ws`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var scoresResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every score",
	Long: `Delete every score on the leaderboard. A remote leaderboard needs an
admin token (see 'skyrunner board token --admin').

Examples:
  skyrunner scores reset
  skyrunner scores reset --yes`,
	Args: cobra.NoArgs,
	Run:  runScoresReset,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", leaderboard.DefaultLimit, "Number of scores to show")
	scoresResetCmd.Flags().BoolVar(&flagYes, "yes", false, "Do not ask for confirmation")
	scoresCmd.AddCommand(scoresResetCmd)
}

func runScores(cmd *cobra.Command, _ []string) {
	e, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout())
	defer cancel()

	fmt.Println("High Scores - Sky Runner")
	fmt.Println()

	// Local stores also know when each score was set
	if e.store != nil {
		scores, err := e.store.TopScores(ctx, flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			return
		}
		if len(scores) == 0 {
			printNoScores()
			return
		}
		fmt.Printf("  %-4s  %-15s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
		fmt.Printf("  %-4s  %-15s  %-8s  %s\n", "----", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-15s  %-8d  %s\n", i+1, entry.Name, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		if stats, err := e.store.GetStats(ctx); err == nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, stats.HighScore, stats.AvgScore)
		}
		return
	}

	entries, err := e.board.FetchTop(ctx, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		printNoScores()
		return
	}
	fmt.Printf("  %-4s  %-15s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-15s  %s\n", "----", "----", "-----")
	for i, entry := range entries {
		fmt.Printf("  %-4d  %-15s  %d\n", i+1, entry.Name, entry.Score)
	}
}

func printNoScores() {
	fmt.Println("No scores recorded yet.")
	fmt.Println()
	fmt.Println("Play 'skyrunner menu' to set the first high score!")
}

func runScoresReset(cmd *cobra.Command, _ []string) {
	e, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()

	if !flagYes && !confirm("Delete every score? [y/N] ") {
		fmt.Println("Nothing deleted.")
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout())
	defer cancel()

	if err := e.board.DeleteAll(ctx); err != nil {
		if errors.Is(err, leaderboard.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Error: reset needs an admin token (--token)")
		} else {
			fmt.Fprintf(os.Stderr, "Error resetting scores: %v\n", err)
		}
		e.Close()
		os.Exit(1)
	}
	e.logger.Info("leaderboard cleared")
	fmt.Println("All scores deleted.")
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
