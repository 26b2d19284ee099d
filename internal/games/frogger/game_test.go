package frogger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/core"
	"github.com/vovakirdan/frogger/internal/registry"
)

// testConfig returns a 600x600 board with 50px tiles and the given cars.
func testConfig(cars ...config.ObstacleConfig) config.FroggerConfig {
	return config.FroggerConfig{
		Board:     config.BoardConfig{Width: 600, Height: 600, TileSize: 50},
		Obstacles: cars,
		Rules:     config.RulesConfig{Lives: 3, TickMS: 100},
	}
}

// Parked car covering the frog's start tile (275,550).
var parkedOnStart = config.ObstacleConfig{X: 250, Y: 550, Speed: 0, Width: 100}

// Car far from the frog's path.
var farCar = config.ObstacleConfig{X: 0, Y: 300, Speed: 0, Width: 50}

func TestNewGameInitialState(t *testing.T) {
	g := New(config.DefaultFroggerConfig())

	if g.ID() != IDClassic {
		t.Errorf("ID = %q, expected %q", g.ID(), IDClassic)
	}
	state := g.State()
	if state.Score != 0 || state.Lives != 3 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if pos := g.Snapshot().Frog; pos != (Position{X: 275, Y: 550}) {
		t.Errorf("frog starts at %+v, expected bottom-center tile", pos)
	}
	if g.TickPeriod() != 100*time.Millisecond {
		t.Errorf("TickPeriod = %v, expected 100ms", g.TickPeriod())
	}
	if n := len(g.Snapshot().Obstacles); n != 3 {
		t.Errorf("expected 3 cars, got %d", n)
	}
}

func TestStrictVariantID(t *testing.T) {
	cfg := testConfig(farCar)
	cfg.Rules.AtMostOneLifeLossPerTick = true
	g := New(cfg)
	if g.ID() != IDStrict {
		t.Errorf("ID = %q, expected %q", g.ID(), IDStrict)
	}
}

func TestThreeCollisionsEndGame(t *testing.T) {
	g := New(testConfig(parkedOnStart))

	for tick := 1; tick <= 3; tick++ {
		res := g.AdvanceTick()
		if !res.Advanced || res.LivesLost != 1 {
			t.Fatalf("tick %d: expected one life lost, got %+v", tick, res)
		}
		if g.State().Lives != 3-tick {
			t.Errorf("tick %d: lives = %d, expected %d", tick, g.State().Lives, 3-tick)
		}
		wantOver := tick == 3
		if g.State().GameOver != wantOver || res.GameOver != wantOver {
			t.Errorf("tick %d: gameOver = %v, expected %v", tick, g.State().GameOver, wantOver)
		}
	}
}

func TestCollisionResetsFrog(t *testing.T) {
	// Car lane one tile above the start row
	g := New(testConfig(config.ObstacleConfig{X: 250, Y: 500, Speed: 0, Width: 100}))

	g.HandleInput(DirUp)
	if pos := g.Snapshot().Frog; pos.Y != 500 {
		t.Fatalf("frog should be in the car lane, got %+v", pos)
	}

	res := g.AdvanceTick()
	if res.LivesLost != 1 {
		t.Fatalf("expected a collision, got %+v", res)
	}
	if pos := g.Snapshot().Frog; pos != (Position{X: 275, Y: 550}) {
		t.Errorf("frog should be back on start, got %+v", pos)
	}
}

func TestGoalScoresAndResets(t *testing.T) {
	g := New(testConfig(farCar))

	for i := 0; i < 11; i++ {
		g.HandleInput(DirUp)
	}
	if pos := g.Snapshot().Frog; pos.Y != 0 {
		t.Fatalf("frog should be in the goal row, got %+v", pos)
	}

	res := g.AdvanceTick()
	if !res.Scored || res.LivesLost != 0 {
		t.Errorf("expected a clean crossing, got %+v", res)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1", g.State().Score)
	}
	if pos := g.Snapshot().Frog; pos != (Position{X: 275, Y: 550}) {
		t.Errorf("frog should be back on start, got %+v", pos)
	}

	// Next tick from the start row scores nothing
	g.AdvanceTick()
	if g.State().Score != 1 {
		t.Errorf("score = %d after a tick off the goal row, expected 1", g.State().Score)
	}
}

func TestGoalAndCollisionSameTick(t *testing.T) {
	// A car parked on the goal row: the crossing is credited from the
	// pre-tick position even though the frog was hit.
	g := New(testConfig(config.ObstacleConfig{X: 250, Y: 0, Speed: 0, Width: 100}))
	for i := 0; i < 11; i++ {
		g.HandleInput(DirUp)
	}

	res := g.AdvanceTick()
	if res.LivesLost != 1 || !res.Scored {
		t.Errorf("expected both a hit and a crossing, got %+v", res)
	}
	state := g.State()
	if state.Lives != 2 || state.Score != 1 {
		t.Errorf("lives=%d score=%d, expected 2 and 1", state.Lives, state.Score)
	}
}

func TestMultiCollisionPolicy(t *testing.T) {
	overlapping := []config.ObstacleConfig{
		parkedOnStart,
		{X: 260, Y: 550, Speed: 0, Width: 20},
	}

	tests := []struct {
		name      string
		strict    bool
		wantLives int
	}{
		{"classic loses a life per car", false, 1},
		{"strict loses one life per tick", true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(overlapping...)
			cfg.Rules.AtMostOneLifeLossPerTick = tc.strict
			g := New(cfg)

			g.AdvanceTick()
			if g.State().Lives != tc.wantLives {
				t.Errorf("lives = %d, expected %d", g.State().Lives, tc.wantLives)
			}
		})
	}
}

func TestLivesNeverNegative(t *testing.T) {
	cars := []config.ObstacleConfig{
		parkedOnStart,
		{X: 260, Y: 550, Speed: 0, Width: 20},
		{X: 300, Y: 550, Speed: 0, Width: 20},
		{X: 280, Y: 550, Speed: 0, Width: 10},
	}
	g := New(testConfig(cars...))

	res := g.AdvanceTick()
	if res.LivesLost != 3 || !res.GameOver {
		t.Errorf("expected three lives lost and game over, got %+v", res)
	}
	if g.State().Lives != 0 {
		t.Errorf("lives = %d, expected 0", g.State().Lives)
	}
}

func TestGameOverHaltsSimulation(t *testing.T) {
	moving := config.ObstacleConfig{X: 0, Y: 100, Speed: 7, Width: 50}
	g := New(testConfig(parkedOnStart, moving))

	for !g.State().GameOver {
		g.AdvanceTick()
	}
	ticks := g.Ticks()
	before := g.Snapshot()

	for i := 0; i < 5; i++ {
		if res := g.AdvanceTick(); res.Advanced {
			t.Fatal("AdvanceTick should not run after game over")
		}
	}
	if g.Ticks() != ticks {
		t.Errorf("tick count moved from %d to %d after game over", ticks, g.Ticks())
	}

	for _, d := range []Direction{DirUp, DirLeft, DirRight, DirDown} {
		if g.HandleInput(d) {
			t.Errorf("HandleInput(%v) should be ignored after game over", d)
		}
	}

	after := g.Snapshot()
	if after.Frog != before.Frog {
		t.Errorf("frog moved after game over: %+v -> %+v", before.Frog, after.Frog)
	}
	for i := range after.Obstacles {
		if after.Obstacles[i] != before.Obstacles[i] {
			t.Errorf("car %d moved after game over", i)
		}
	}
}

func TestPauseBlocksTicksAndMoves(t *testing.T) {
	g := New(testConfig(farCar))

	g.HandleAction(core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}

	g.Step()
	if g.Ticks() != 0 {
		t.Errorf("Step should not tick while paused, ticks = %d", g.Ticks())
	}
	g.HandleAction(core.ActionUp)
	if pos := g.Snapshot().Frog; pos.Y != 550 {
		t.Errorf("frog should not move while paused, got %+v", pos)
	}

	g.HandleAction(core.ActionPause)
	g.Step()
	if g.Ticks() != 1 {
		t.Errorf("ticks = %d after resume, expected 1", g.Ticks())
	}
	g.HandleAction(core.ActionUp)
	if pos := g.Snapshot().Frog; pos.Y != 500 {
		t.Errorf("frog should move after resume, got %+v", pos)
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	g := New(testConfig(parkedOnStart))
	for !g.State().GameOver {
		g.AdvanceTick()
	}

	g.Reset(core.DefaultConfig())

	state := g.State()
	if state.GameOver || state.Lives != 3 || state.Score != 0 {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if g.Ticks() != 0 {
		t.Errorf("ticks = %d after reset, expected 0", g.Ticks())
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := New(config.DefaultFroggerConfig())
	g.AdvanceTick()

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, key := range []string{`"board"`, `"frog"`, `"obstacles"`, `"score"`, `"lives"`, `"gameOver"`, `"tick":1`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("snapshot JSON missing %s: %s", key, data)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := New(testConfig(farCar))
	snap := g.Snapshot()
	snap.Obstacles[0].X = 999

	if g.Snapshot().Obstacles[0].X == 999 {
		t.Error("mutating a snapshot should not change the game")
	}
}

func TestRenderShowsBoardAndHUD(t *testing.T) {
	g := New(config.DefaultFroggerConfig())
	screen := core.NewScreen(60, 28)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") || !strings.Contains(out, "Lives: 3") {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, FrogChar) {
		t.Error("frog not rendered")
	}
	if !strings.ContainsRune(out, CarChar) {
		t.Error("cars not rendered")
	}
	if strings.Contains(out, "Game Over") {
		t.Error("game over overlay should not be shown")
	}
	if !strings.Contains(screen.Row(hudRows-1), "────") {
		t.Errorf("HUD separator missing: %q", screen.Row(hudRows-1))
	}

	// Frog start tile (275,550) maps to the bottom rows of the board
	boardRow := hudRows + 550/50*cellsPerTileY
	if !strings.ContainsRune(screen.Row(boardRow), FrogChar) {
		t.Errorf("frog not found on row %d: %q", boardRow, screen.Row(boardRow))
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := New(testConfig(parkedOnStart))
	for !g.State().GameOver {
		g.AdvanceTick()
	}

	screen := core.NewScreen(60, 28)
	g.Render(screen)
	// The overlay box is 5 rows tall and centered vertically.
	if row := screen.Row((28-5)/2 + 1); !strings.Contains(row, "│") || !strings.Contains(row, "Game Over") {
		t.Errorf("expected game over title inside the box, got %q", row)
	}
	if !strings.Contains(screen.String(), "Final Score: 0") {
		t.Error("expected final score in the overlay")
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{IDClassic, IDStrict} {
		if !registry.Exists(id) {
			t.Errorf("%s should be registered", id)
			continue
		}
		g, err := Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}

	g, _ := Create(IDStrict)
	if !g.Config().Rules.AtMostOneLifeLossPerTick {
		t.Error("strict variant should cap life loss per tick")
	}
}

func TestSetConfigPath(t *testing.T) {
	t.Cleanup(func() { SetConfigPath("") })
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  tile_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(bad); err == nil {
		t.Error("expected an error for an invalid board")
	}
	if err := SetConfigPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("rules:\n  lives: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(good); err != nil {
		t.Fatalf("SetConfigPath(good) failed: %v", err)
	}

	for _, id := range []string{IDClassic, IDStrict} {
		g, err := Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if lives := g.State().Lives; lives != 5 {
			t.Errorf("%s: lives = %d, expected 5 from the custom config", id, lives)
		}
	}
}
