// Package frogger implements a Frogger-style game.
// The player moves a frog tile by tile across lanes of cars to reach the goal
// row at the top of the board. Each crossing scores a point; each hit costs a
// life until the game is over.
package frogger

import (
	"fmt"
	"time"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/core"
	"github.com/vovakirdan/frogger/internal/registry"
)

// Game IDs registered by this package.
const (
	IDClassic = "frogger"
	IDStrict  = "frogger_strict"
)

// TickResult describes what happened during one tick.
type TickResult struct {
	Advanced  bool // False when the game was already over
	LivesLost int
	Scored    bool
	GameOver  bool // True only on the tick that ended the game
}

// Game owns the whole session state. AdvanceTick and HandleInput are its only
// mutators and must be called from a single goroutine.
type Game struct {
	id        string
	title     string
	cfg       config.FroggerConfig
	runtime   core.RuntimeConfig
	frog      Frog
	obstacles *ObstacleSet
	score     int
	lives     int
	gameOver  bool
	paused    bool
	tickCount int
}

// customConfig is the board loaded from --config, nil when unset.
var customConfig *config.FroggerConfig

// SetConfigPath loads and validates the board config at path for all later
// variants. An empty path restores the implicit search order.
func SetConfigPath(path string) error {
	if path == "" {
		customConfig = nil
		return nil
	}
	cfg, err := config.LoadFrogger(path)
	if err != nil {
		return err
	}
	customConfig = &cfg
	return nil
}

// New creates a ready-to-play game from an explicit configuration.
func New(cfg config.FroggerConfig) *Game {
	g := &Game{
		id:    IDClassic,
		title: "Frogger",
		cfg:   cfg,
	}
	if cfg.Rules.AtMostOneLifeLossPerTick {
		g.id = IDStrict
		g.title = "Frogger (strict)"
	}
	g.Reset(core.DefaultConfig())
	return g
}

// NewVariant uses the board from SetConfigPath, or else the first one found
// in the user dir, local dir or embedded default, and applies the variant's
// rules.
func NewVariant(v config.Variant) *Game {
	var cfg config.FroggerConfig
	if customConfig != nil {
		cfg = *customConfig
	} else {
		// The implicit search ends at the embedded default and never fails.
		cfg, _ = config.LoadFrogger("")
	}
	config.ApplyVariant(&cfg, v)
	return New(cfg)
}

// Create builds a registered variant by game ID.
func Create(id string) (*Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	fg, ok := g.(*Game)
	if !ok {
		return nil, fmt.Errorf("frogger: %q is not a frogger variant", id)
	}
	return fg, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Config returns the configuration the game was built from.
func (g *Game) Config() config.FroggerConfig {
	return g.cfg
}

// TickPeriod returns the fixed time between ticks.
func (g *Game) TickPeriod() time.Duration {
	return g.cfg.Rules.TickPeriod()
}

// Reset discards all state and starts a fresh session from the configuration.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.frog = NewFrog(g.cfg.Board)
	g.obstacles = NewObstacleSet(g.cfg)
	g.score = 0
	g.lives = g.cfg.Rules.Lives
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
}

// HandleInput moves the frog one tile. It is ignored once the game is over
// or while paused, and reports whether the frog moved.
func (g *Game) HandleInput(d Direction) bool {
	if g.gameOver || g.paused {
		return false
	}
	return g.frog.Move(d)
}

// HandleAction applies a platform action between ticks.
func (g *Game) HandleAction(a core.Action) {
	if a == core.ActionPause {
		if !g.gameOver {
			g.paused = !g.paused
		}
		return
	}
	if d, ok := DirectionFromAction(a); ok {
		g.HandleInput(d)
	}
}

// AdvanceTick runs one simulation step: move the cars, resolve collisions
// against the frog's pre-tick position, then credit a crossing if that
// position was in the goal row.
func (g *Game) AdvanceTick() TickResult {
	if g.gameOver {
		return TickResult{}
	}

	res := TickResult{Advanced: true}
	g.tickCount++

	frogRect := g.frog.Rect()
	inGoal := g.frog.InGoalRow()

	g.obstacles.Advance()

	for range g.obstacles.Colliding(frogRect) {
		g.lives--
		res.LivesLost++
		g.frog.ResetToStart()
		if g.lives <= 0 {
			g.lives = 0
			g.gameOver = true
			res.GameOver = true
			break
		}
		if g.cfg.Rules.AtMostOneLifeLossPerTick {
			break
		}
	}

	if inGoal {
		g.score++
		res.Scored = true
		g.frog.ResetToStart()
	}

	return res
}

// Step advances the game by one tick unless paused.
func (g *Game) Step() core.StepResult {
	if !g.paused {
		g.AdvanceTick()
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Ticks returns the number of ticks simulated so far.
func (g *Game) Ticks() int {
	return g.tickCount
}

// Register both rule sets with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return NewVariant(config.VariantClassic)
	})
	registry.Register(IDStrict, func() registry.Game {
		return NewVariant(config.VariantStrict)
	})
}
