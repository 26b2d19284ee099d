package frogger

import (
	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/core"
)

// Obstacle is a car driving along a fixed lane.
type Obstacle struct {
	X     int `json:"x"`     // Left edge, always in [0, boardW)
	Y     int `json:"y"`     // Lane top edge, constant
	Speed int `json:"speed"` // Pixels per tick
	Width int `json:"width"`
}

// Rect returns the collision rectangle for this car. Cars are one tile high.
func (o Obstacle) Rect(tileSize int) core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, tileSize)
}

// ObstacleSet is the fixed collection of cars on the board.
// Cars are created at game start and never added or removed.
type ObstacleSet struct {
	cars     []Obstacle
	boardW   int
	tileSize int
}

// NewObstacleSet creates the cars described by the configuration.
// Initial positions are wrapped into the board.
func NewObstacleSet(cfg config.FroggerConfig) *ObstacleSet {
	s := &ObstacleSet{
		cars:     make([]Obstacle, len(cfg.Obstacles)),
		boardW:   cfg.Board.Width,
		tileSize: cfg.Board.TileSize,
	}
	for i, oc := range cfg.Obstacles {
		s.cars[i] = Obstacle{
			X:     core.Mod(oc.X, s.boardW),
			Y:     oc.Y,
			Speed: oc.Speed,
			Width: oc.Width,
		}
	}
	return s
}

// Advance moves every car by its speed, wrapping around the board width.
// Each new position depends only on that car's own pre-tick position.
func (s *ObstacleSet) Advance() {
	for i := range s.cars {
		s.cars[i].X = core.Mod(s.cars[i].X+s.cars[i].Speed, s.boardW)
	}
}

// Colliding returns the indices of the cars overlapping r.
func (s *ObstacleSet) Colliding(r core.Rect) []int {
	var hits []int
	for i, c := range s.cars {
		if c.Rect(s.tileSize).Intersects(r) {
			hits = append(hits, i)
		}
	}
	return hits
}

// Len returns the number of cars.
func (s *ObstacleSet) Len() int {
	return len(s.cars)
}

// All returns a copy of the cars.
func (s *ObstacleSet) All() []Obstacle {
	out := make([]Obstacle, len(s.cars))
	copy(out, s.cars)
	return out
}
