package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/games/runner"
	"github.com/vovakirdan/skyrunner/internal/registry"
)

var (
	flagRuns      int
	flagMaxFrames int
	flagSimTheme  string
	flagSubmitAs  string
	flagLead      float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play seeded runs with an autopilot",
	Long: `Play runs without a screen, jumping with a simple autopilot, and print
a report. Seeds count up from --seed, so reports are reproducible.

Examples:
  skyrunner simulate --runs 20 --seed 42
  skyrunner simulate --difficulty hard --max-frames 36000
  skyrunner simulate --runs 5 --submit bot`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
	simulateCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 60*60*5, "Frame cap per run")
	simulateCmd.Flags().StringVar(&flagSimTheme, "theme", "", "Theme to run on (default: first registered)")
	simulateCmd.Flags().StringVar(&flagSubmitAs, "submit", "", "Submit every score to the leaderboard under this name")
	simulateCmd.Flags().Float64Var(&flagLead, "lead", runner.NewAutopilot().LeadFrames, "Autopilot lead, in frames of travel")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	themeID := flagSimTheme
	if themeID == "" {
		themeID = registry.Default()
	}
	if !registry.Exists(themeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", themeID)
		os.Exit(1)
	}
	if flagSubmitAs != "" {
		if _, err := runner.ValidateName(flagSubmitAs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	e, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()
	applyDifficulty(&e.cfg, flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pilot := runner.Autopilot{LeadFrames: flagLead}

	fmt.Printf("Autopilot on %s, %d runs from seed %d\n\n", themeID, flagRuns, seed)
	fmt.Printf("  %-4s  %-20s  %-7s  %-5s  %-7s  %s\n", "Run", "Seed", "Score", "Combo", "Frames", "Jumps")
	fmt.Printf("  %-4s  %-20s  %-7s  %-5s  %-7s  %s\n", "---", "----", "-----", "-----", "------", "-----")

	var total, best, capped int
	for i := 0; i < flagRuns; i++ {
		theme, _ := registry.Create(themeID)
		runSeed := seed + int64(i)
		rep := runner.Simulate(runner.New(e.cfg, theme, runSeed), pilot, runSeed, flagMaxFrames)

		mark := ""
		if !rep.Ended {
			mark = " (capped)"
			capped++
		}
		fmt.Printf("  %-4d  %-20d  %-7d  %-5d  %-7d  %d%s\n", i+1, rep.Seed, rep.Score, rep.Combo, rep.Frames, rep.Jumps, mark)
		e.logger.Debug("simulated run", "seed", rep.Seed, "score", rep.Score, "frames", rep.Frames)

		total += rep.Score
		best = max(best, rep.Score)

		if flagSubmitAs != "" {
			ctx, cancel := context.WithTimeout(cmd.Context(), e.timeout())
			if err := e.board.Submit(ctx, flagSubmitAs, rep.Score); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: score not submitted: %v\n", err)
			}
			cancel()
		}
	}

	if flagRuns > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.1f  Capped: %d\n", best, float64(total)/float64(flagRuns), capped)
	}
}
