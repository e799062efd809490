package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyrunner/internal/leaderboard"
)

const boardKeyEnv = "SKYRUNNER_BOARD_KEY"

var (
	flagBoardAddr  string
	flagSigningKey string
	flagAdminHash  string
	flagSubject    string
	flagAdmin      bool
	flagTokenTTL   time.Duration
	flagServeLimit int
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Run or administer the leaderboard service",
	Long: `The leaderboard service shares one SQLite database with remote players
over websocket. Players read freely; submitting needs a token and resetting
needs an admin token, both signed with the service key.

The signing key is read from --key or $` + boardKeyEnv + `.`,
}

var boardServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboard over websocket",
	Long: `Serve the local scores database at ws://<addr>/ws.

Examples:
  skyrunner board serve --addr :8080 --key "$(cat board.key)"
  skyrunner board serve --admin-hash '$2a$10$...'   # enables POST /login`,
	Args: cobra.NoArgs,
	Run:  runBoardServe,
}

var boardTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed token",
	Long: `Print a token for a player, or an admin token with --admin.

Examples:
  skyrunner board token --subject ada
  skyrunner board token --admin --ttl 24h`,
	Args: cobra.NoArgs,
	Run:  runBoardToken,
}

var boardPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Hash an admin password",
	Long: `Read a password and print its bcrypt hash for --admin-hash.
Admins can then trade the password for a token at POST /login.`,
	Args: cobra.NoArgs,
	Run:  runBoardPasswd,
}

func init() {
	boardCmd.PersistentFlags().StringVar(&flagSigningKey, "key", "", "Token signing key, at least 16 bytes (default: $"+boardKeyEnv+")")

	boardServeCmd.Flags().StringVar(&flagBoardAddr, "addr", ":8080", "HTTP listen address")
	boardServeCmd.Flags().StringVar(&flagAdminHash, "admin-hash", "", "bcrypt hash of the admin password")
	boardServeCmd.Flags().IntVar(&flagServeLimit, "limit", 0, "Largest fetch_top the service answers (0 = from config)")

	boardTokenCmd.Flags().StringVar(&flagSubject, "subject", "player", "Token subject")
	boardTokenCmd.Flags().BoolVar(&flagAdmin, "admin", false, "Grant reset rights")
	boardTokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", 0, "Token lifetime (0 = 30 days)")

	boardCmd.AddCommand(boardServeCmd)
	boardCmd.AddCommand(boardTokenCmd)
	boardCmd.AddCommand(boardPasswdCmd)
}

func signingKey() string {
	if flagSigningKey != "" {
		return flagSigningKey
	}
	return os.Getenv(boardKeyEnv)
}

func runBoardServe(cmd *cobra.Command, _ []string) {
	if flagBoardURL != "" {
		fmt.Fprintln(os.Stderr, "Error: board serve uses the local database; drop --board")
		os.Exit(1)
	}
	signer, err := leaderboard.NewSigner([]byte(signingKey()), 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	e, err := setup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()

	limit := flagServeLimit
	if limit <= 0 {
		limit = e.cfg.Leaderboard.Limit
	}
	server := leaderboard.NewServer(e.board, leaderboard.ServerOptions{
		Addr:      flagBoardAddr,
		Signer:    signer,
		AdminHash: flagAdminHash,
		Limit:     limit,
		Logger:    e.logger.WithPrefix("board"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Leaderboard service on %s (websocket at /ws)\n", flagBoardAddr)
	fmt.Println("Press Ctrl+C to stop")
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		e.Close()
		os.Exit(1)
	}
}

func runBoardToken(_ *cobra.Command, _ []string) {
	signer, err := leaderboard.NewSigner([]byte(signingKey()), flagTokenTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tok, err := signer.Issue(flagSubject, flagAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func runBoardPasswd(_ *cobra.Command, _ []string) {
	password, err := readPassword("Admin password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	hash, err := leaderboard.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// readPassword reads without echo from a terminal, or a line from a pipe.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
