package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/audio"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/games/runner"
	"github.com/vovakirdan/skyrunner/internal/platform/gui"
	"github.com/vovakirdan/skyrunner/internal/platform/tui"
	"github.com/vovakirdan/skyrunner/internal/registry"
)

var (
	flagName       string
	flagDifficulty string
	flagGUI        bool
	flagScale      float64
)

var playCmd = &cobra.Command{
	Use:   "play [theme]",
	Short: "Start a run",
	Long: `Start a run straight away, skipping the home screen.

Controls:
  Space/Up/W/click  - Jump
  P/Esc             - Pause (or click the pause control)
  X                 - Exit to home (while paused)
  R                 - Retry (after game over)
  C                 - Copy your score (after game over)
  Ctrl+C            - Quit

Difficulty options:
  easy   - Start at base speed, speeds up with score
  normal - Start 30% faster, speeds up with score
  hard   - Start 70% faster, speeds up with score
  fixed  - No progression, base speed all run

Examples:
  skyrunner play --name ada
  skyrunner play lava --name ada --difficulty hard
  skyrunner play --gui --scale 1.5
  skyrunner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (default: $USER)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per playfield unit (with --gui)")
}

func runPlay(_ *cobra.Command, args []string) {
	themeID := registry.Default()
	if len(args) == 1 {
		themeID = args[0]
	}

	// Check if theme exists
	if !registry.Exists(themeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", themeID)
		fmt.Fprintln(os.Stderr, "Run 'skyrunner themes' to see available themes.")
		os.Exit(1)
	}

	name := flagName
	if name == "" {
		name = os.Getenv("USER")
	}
	name, err := runner.ValidateName(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Pass a name with --name.")
		os.Exit(1)
	}

	e, err := setup(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyDifficulty(&e.cfg, flagDifficulty)

	player := audio.NewPlayer(e.cfg.Audio, e.logger)
	board := e.async()

	var runErr error
	if flagGUI {
		runErr = gui.Run(gui.Options{
			Config: e.cfg,
			Board:  board,
			Images: e.images(),
			Audio:  player,
			Logger: e.logger,
			Name:   name,
			Theme:  themeID,
			Seed:   flagSeed,
			Scale:  flagScale,
			Best:   e.best(),
		})
	} else {
		width, height := terminalSize()
		runErr = tui.Run(tui.Options{
			Config: e.cfg,
			Board:  board,
			Images: e.images(),
			Audio:  player,
			Logger: e.logger,
			Name:   name,
			Theme:  themeID,
			Direct: true,
			Seed:   flagSeed,
			Width:  width,
			Height: height,
			Best:   e.best(),
		})
	}

	// Let the final submit land before the store closes
	e.drain(board)
	player.Close()
	e.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyDifficulty applies a --difficulty preset, warning on unknown names.
func applyDifficulty(cfg *config.RunnerConfig, name string) {
	if name == "" {
		return
	}
	preset := config.ParsePreset(strings.ToLower(name))
	if preset == "" {
		fmt.Fprintf(os.Stderr, "Warning: unknown difficulty %q, using config\n", name)
		return
	}
	config.ApplyRunnerPreset(cfg, preset)
}
