package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/platform/web"
)

var (
	flagWebAddr    string
	flagWebDefault string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the Frogger web server",
	Long: `Serve Frogger to browsers over HTTP and WebSocket.

Every browser tab gets its own game session driven by the server. Open
http://localhost:8080/ to play, or add ?game=frogger_strict&player=ann.

Endpoints:
  GET /             - browser client
  GET /health       - health check
  GET /api/games    - registered variants
  GET /api/scores   - top scores (?game=<id>&limit=<n>)
  GET /ws           - game session WebSocket

Environment:
  FROGGER_WEB_ADDR  - default for --addr
  DATABASE_URL      - default for --db

Examples:
  frogger web
  frogger web --addr :9000 --db postgres://localhost/frogger`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", config.GetEnv("FROGGER_WEB_ADDR", ":8080"), "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagWebDefault, "game", "", "Variant served when the client does not pick one")
}

func runWeb(cmd *cobra.Command, _ []string) {
	logger := newLogger("frogger-web")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	if flagWebDefault != "" {
		id, err := resolveGameID([]string{flagWebDefault})
		if err != nil {
			logger.Error("invalid --game", "error", err)
			stop()
			os.Exit(1)
		}
		cfg.DefaultGame = id
	}

	store := openStore(ctx)
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(cfg, store, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}
