package frogger

// Board describes the playfield geometry in pixels.
type Board struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

// Snapshot is a read-only copy of the session state for renderers.
// It is taken between ticks, never mid-tick.
type Snapshot struct {
	Board     Board      `json:"board"`
	Frog      Position   `json:"frog"`
	Obstacles []Obstacle `json:"obstacles"`
	Score     int        `json:"score"`
	Lives     int        `json:"lives"`
	GameOver  bool       `json:"gameOver"`
	Paused    bool       `json:"paused"`
	Tick      int        `json:"tick"`
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board: Board{
			Width:    g.cfg.Board.Width,
			Height:   g.cfg.Board.Height,
			TileSize: g.cfg.Board.TileSize,
		},
		Frog:      g.frog.Position(),
		Obstacles: g.obstacles.All(),
		Score:     g.score,
		Lives:     g.lives,
		GameOver:  g.gameOver,
		Paused:    g.paused,
		Tick:      g.tickCount,
	}
}
