package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogger/internal/core"
	"github.com/vovakirdan/frogger/internal/registry"
	"github.com/vovakirdan/frogger/internal/storage"
)

// statusRows is the space below the board for the best score and help line.
const statusRows = 2

// GameModel runs one game inside Bubble Tea. The Bubble Tea event loop is
// the only goroutine touching the game: keys move the frog as they arrive
// and TickMsg advances the simulation.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      storage.ScoreStore
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	gameState  core.GameState
	highScore  int
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	tickID     int  // Current tick chain
}

// NewGameModel creates a model for game and starts a fresh session.
func NewGameModel(game registry.Game, store storage.ScoreStore, cfg core.RuntimeConfig) GameModel {
	game.Reset(cfg)

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH)),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		gameState: game.State(),
		tickID:    nextTickID(),
	}
	m.loadHighScore()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickID, m.game.TickPeriod())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board has a fixed size; only the viewport changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action.IsDirectional() || action == core.ActionPause {
		m.game.HandleAction(action)
		m.gameState = m.game.State()
		return m, nil
	}

	switch action {
	case core.ActionRestart:
		if m.gameState.GameOver {
			return m.restart()
		}

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// restart starts a new session with a fresh tick chain.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.loadHighScore()
	m.tickID = nextTickID()
	return m, tickCmd(m.tickID, m.game.TickPeriod())
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver {
		return m, nil
	}

	result := m.game.Step()
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveScore()
		return m, nil // Stop ticking
	}

	return m, tickCmd(m.tickID, m.game.TickPeriod())
}

// saveScore records the final score once per game.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(ctx, m.game.ID(), m.config.Player, m.gameState.Score)

	if m.gameState.Score > m.highScore {
		m.highScore = m.gameState.Score
	}
}

// loadHighScore fetches the best score for the HUD.
func (m *GameModel) loadHighScore() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if high, err := m.store.HighScore(ctx, m.game.ID()); err == nil {
		m.highScore = high
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	// Trailing blanks are dropped so the file stays readable in an editor.
	rows := make([]string, m.screen.Height())
	for y := range rows {
		rows[y] = strings.TrimRight(m.screen.Row(y), " ")
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o600)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the board followed by the status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := fmt.Sprintf(" %s  |  Best: %d  |  %s", m.game.Title(), m.highScore, m.config.Player)
	return RenderScreen(m.screen) + "\n" +
		statusStyle.Render(status) + "\n" +
		m.help.View(m.keyMapper.Keys())
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

func screenRows(h int) int {
	return core.Max(1, h-statusRows)
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, store storage.ScoreStore, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
