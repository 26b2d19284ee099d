// frogger is a terminal and browser Frogger game.
//
// Usage:
//
//	frogger list              - List available variants
//	frogger play [variant]    - Play a variant in this terminal
//	frogger menu              - Start menu to pick variants interactively
//	frogger serve             - Start SSH server for remote play
//	frogger web               - Start HTTP/WebSocket server for browsers
//	frogger scores [variant]  - Show high scores for a variant
//
// Global flags:
//
//	--db <dsn>          - Score store: SQLite path or postgres:// URL
//	--config <path>     - Custom board config YAML
//	--player <name>     - Name recorded with high scores
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/games/frogger"
	"github.com/vovakirdan/frogger/internal/registry"
	"github.com/vovakirdan/frogger/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frogger",
	Short: "Frogger - cross the road in your terminal",
	Long: `Frogger moves a frog across lanes of traffic to the goal row.
Every crossing scores a point, every car that hits you costs a life.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker with scoreboard
  serve    - Start SSH server for remote play
  web      - Start web server for browser play
  scores   - View high scores

Examples:
  frogger list
  frogger play
  frogger play strict
  frogger menu --player ann
  frogger serve --ssh :2222
  frogger web --addr :8080 --db postgres://localhost/frogger
  frogger scores frogger_strict`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return frogger.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.GetEnv("DATABASE_URL", storage.DefaultPath), "Score store: SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", config.GetEnv("USER", "player"), "Name recorded with high scores")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the server logger from --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the score store. Games still run without one, so a failure
// is only a warning.
func openStore(ctx context.Context) storage.ScoreStore {
	store, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// resolveGameID accepts a registry ID or a variant name ("classic", "strict").
func resolveGameID(args []string) (string, error) {
	if len(args) == 0 {
		return frogger.IDClassic, nil
	}
	id := strings.ToLower(args[0])
	switch config.Variant(id) {
	case config.VariantClassic:
		id = frogger.IDClassic
	case config.VariantStrict:
		id = frogger.IDStrict
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown game %q, run 'frogger list' to see available variants", args[0])
	}
	return id, nil
}
