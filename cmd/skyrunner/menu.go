package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/audio"
	"github.com/vovakirdan/skyrunner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the home screen",
	Long: `Start Sky Runner in interactive menu mode.

Enter your name on the home screen, pick a theme and fly. After a run
you can retry, copy your score or open the leaderboard.

Controls:
  Enter        - Confirm name / select theme
  Up/Down/j/k  - Navigate themes and scores
  Tab          - Leaderboard
  X (scores)   - Reset all scores (asks first)
  Esc/B        - Back
  Ctrl+C       - Quit

Examples:
  skyrunner menu
  skyrunner menu --fps 30
  skyrunner menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagName, "name", "", "Prefill the player name")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	e, err := setup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()
	applyDifficulty(&e.cfg, flagDifficulty)

	player := audio.NewPlayer(e.cfg.Audio, e.logger)
	defer player.Close()

	board := e.async()
	width, height := terminalSize()
	err = tui.Run(tui.Options{
		Config: e.cfg,
		Board:  board,
		Images: e.images(),
		Audio:  player,
		Logger: e.logger,
		Name:   flagName,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
		Best:   e.best(),
	})
	e.drain(board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
