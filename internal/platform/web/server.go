package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/frogger/internal/games/frogger"
	"github.com/vovakirdan/frogger/internal/registry"
	"github.com/vovakirdan/frogger/internal/storage"
)

const maxPlayerRunes = 32

//go:embed static/index.html
var indexHTML []byte

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DefaultGame is used when a client does not pick a variant.
	DefaultGame string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		DefaultGame: frogger.IDClassic,
	}
}

// Server serves the browser client and one game session per WebSocket.
type Server struct {
	config   Config
	store    storage.ScoreStore
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	// ctx scopes all sessions; cancelled on shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server. store may be nil to disable scores.
func NewServer(cfg Config, store storage.ScoreStore, logger *log.Logger) *Server {
	if cfg.DefaultGame == "" {
		cfg.DefaultGame = frogger.IDClassic
	}
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // The game carries no credentials
			},
		},
		mux:    http.NewServeMux(),
		ctx:    ctx,
		cancel: cancel,
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /health", handleHealth)
	s.mux.HandleFunc("GET /api/games", s.handleGames)
	s.mux.HandleFunc("GET /api/scores", s.handleScores)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.cancel()
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close stops every running session.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	type gameInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	var games []gameInfo
	for _, g := range registry.List() {
		games = append(games, gameInfo{ID: g.ID, Title: g.Title})
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		gameID = s.config.DefaultGame
	}
	if !registry.Exists(gameID) {
		writeJSON(w, http.StatusNotFound, ErrorMessage{Message: "unknown game: " + gameID})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeJSON(w, http.StatusBadRequest, ErrorMessage{Message: "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	scores := []storage.ScoreEntry{}
	if s.store != nil {
		entries, err := s.store.TopScores(r.Context(), gameID, limit)
		if err != nil {
			s.logger.Error("could not load scores", "game", gameID, "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorMessage{Message: "could not load scores"})
			return
		}
		if entries != nil {
			scores = entries
		}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		gameID = s.config.DefaultGame
	}
	if !registry.Exists(gameID) {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	player := playerName(r.URL.Query().Get("player"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		ID:     uuid.NewString(),
		GameID: gameID,
		Player: player,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		store:  s.store,
		logger: s.logger,
	}
	s.logger.Info("client connected", "client", c.ID, "game", gameID, "player", player, "remote", r.RemoteAddr)

	go c.WritePump()
	go func() {
		c.ReadPump(s.ctx)
		s.logger.Info("client disconnected", "client", c.ID)
	}()
}

// playerName defaults an empty name, drops invalid UTF-8 and caps the
// result at maxPlayerRunes runes.
func playerName(s string) string {
	s = strings.ToValidUTF8(s, "")
	if s == "" {
		return "anonymous"
	}
	if r := []rune(s); len(r) > maxPlayerRunes {
		return string(r[:maxPlayerRunes])
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("could not encode response", "error", err)
	}
}
