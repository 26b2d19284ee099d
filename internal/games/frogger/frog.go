package frogger

import (
	"fmt"

	"github.com/vovakirdan/frogger/internal/config"
	"github.com/vovakirdan/frogger/internal/core"
)

// Direction is one of the four tile-sized moves.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name used on the wire.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a wire name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("frogger: unknown direction %q", s)
}

// DirectionFromAction maps a platform action to a direction.
// The second result is false for non-directional actions.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// Position is a point in board pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Frog is the player entity: a one-tile square kept inside the board.
type Frog struct {
	pos   Position
	start Position
	tile  int
	maxX  int
	maxY  int
}

// NewFrog places a frog on the start tile: bottom row, horizontally centered.
func NewFrog(board config.BoardConfig) Frog {
	f := Frog{
		start: Position{
			X: board.Width/2 - board.TileSize/2,
			Y: board.Height - board.TileSize,
		},
		tile: board.TileSize,
		maxX: board.Width - board.TileSize,
		maxY: board.Height - board.TileSize,
	}
	f.ResetToStart()
	return f
}

// Move offsets the frog by one tile and clamps it to the board.
// It reports whether the position changed.
func (f *Frog) Move(d Direction) bool {
	var dx, dy int
	switch d {
	case DirUp:
		dy = -f.tile
	case DirDown:
		dy = f.tile
	case DirLeft:
		dx = -f.tile
	case DirRight:
		dx = f.tile
	default:
		return false
	}

	r := f.Rect().Offset(dx, dy)
	next := Position{
		X: core.Clamp(r.X, 0, f.maxX),
		Y: core.Clamp(r.Y, 0, f.maxY),
	}
	moved := next != f.pos
	f.pos = next
	return moved
}

// ResetToStart puts the frog back on the start tile.
func (f *Frog) ResetToStart() {
	f.pos = f.start
}

// Position returns the frog's top-left corner.
func (f Frog) Position() Position {
	return f.pos
}

// Rect returns the frog's collision rectangle.
func (f Frog) Rect() core.Rect {
	return core.NewRect(f.pos.X, f.pos.Y, f.tile, f.tile)
}

// InGoalRow reports whether the frog is on the topmost row.
func (f Frog) InGoalRow() bool {
	return f.pos.Y <= 0
}
