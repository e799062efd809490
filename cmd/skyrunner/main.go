// skyrunner is a side-scrolling reflex runner for the terminal and the
// desktop, with a shared leaderboard.
//
// Usage:
//
//	skyrunner menu             - Home, theme picker, runs and leaderboard
//	skyrunner play [theme]     - Start a run at once
//	skyrunner themes           - List available themes
//	skyrunner scores           - Show the leaderboard
//	skyrunner serve            - Start SSH server for remote play
//	skyrunner board serve      - Run the websocket leaderboard service
//	skyrunner simulate         - Play seeded runs with an autopilot
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: from config, 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.skyrunner/scores.db)
//	--board <url>   - Use a remote leaderboard instead of the database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import themes to register them
	_ "github.com/vovakirdan/skyrunner/internal/themes"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagBoardURL string
	flagToken    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyrunner",
	Short: "Sky Runner - jump poles, dodge drones, chain near misses",
	Long: `Sky Runner is a side-scrolling reflex game. Your runner stays put while
the world scrolls past; jump the poles, stay under the drones and pass
obstacles close for a combo bonus.

Available commands:
  menu      - Home screen, theme picker and leaderboard
  play      - Start a run directly (terminal or --gui window)
  themes    - Show all available themes
  scores    - View or reset the leaderboard
  serve     - Start SSH server for remote play
  board     - Run or administer the leaderboard service
  simulate  - Headless autopilot runs

Examples:
  skyrunner menu
  skyrunner play space --name ada
  skyrunner play --gui --name ada
  skyrunner serve --ssh :2222
  skyrunner board serve --addr :8080
  skyrunner scores --board ws://localhost:8080/ws`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyrunner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.skyrunner/skyrunner.log for games, stderr for servers)")
	rootCmd.PersistentFlags().StringVar(&flagBoardURL, "board", "", "Remote leaderboard URL (ws:// or http://); overrides the database")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Token for the remote leaderboard")

	// Add subcommands
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(simulateCmd)
}
