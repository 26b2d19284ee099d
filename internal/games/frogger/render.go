package frogger

import (
	"fmt"

	"github.com/vovakirdan/frogger/internal/core"
)

// Visual characters
const (
	FrogChar  = '@'
	CarChar   = '█'
	RoadChar  = '·'
	GoalChar  = '▒'
	StartChar = '░'
)

// Terminal cells per board tile. Terminal cells are roughly twice as tall
// as they are wide, so a square tile becomes 4x2 cells.
const (
	cellsPerTileX = 4
	cellsPerTileY = 2
)

// hudRows is the number of screen rows above the board.
const hudRows = 2

// Render draws the current game state to the screen.
// The board is scaled to whole tiles and centered horizontally.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	tile := g.cfg.Board.TileSize
	cols := g.cfg.Board.Width / tile * cellsPerTileX
	rows := g.cfg.Board.Height / tile * cellsPerTileY
	offX := core.Max(0, (dst.Width()-cols)/2)
	offY := hudRows

	v := viewport{offX: offX, offY: offY, cols: cols, rows: rows, tile: tile}

	// Goal row, road and start row
	dst.DrawRectColored(core.NewRect(offX, offY, cols, cellsPerTileY), GoalChar, core.ColorGreen)
	dst.DrawRectColored(core.NewRect(offX, offY+cellsPerTileY, cols, rows-2*cellsPerTileY), RoadChar, core.ColorGray)
	dst.DrawRectColored(core.NewRect(offX, offY+rows-cellsPerTileY, cols, cellsPerTileY), StartChar, core.ColorGreen)

	for _, o := range g.obstacles.All() {
		v.fill(dst, o.Rect(tile), CarChar, core.ColorRed)
	}

	v.fill(dst, g.frog.Rect(), FrogChar, core.ColorBrightGreen)

	// HUD
	dst.DrawTextColored(offX, 0, fmt.Sprintf("Score: %d", g.score), core.ColorBrightYellow)
	lives := fmt.Sprintf("Lives: %d", g.lives)
	dst.DrawTextColored(offX+cols-len(lives), 0, lives, core.ColorBrightRed)
	dst.DrawHLine(offX, hudRows-1, cols, '─')

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		drawCenteredMessage(dst, "Game Over", fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score))
	}
}

// viewport maps board pixels to screen cells.
type viewport struct {
	offX, offY int
	cols, rows int
	tile       int
}

// fill draws a board rectangle, clipped to the board area.
func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0 := r.X * cellsPerTileX / v.tile
	x1 := (r.Right()*cellsPerTileX + v.tile - 1) / v.tile
	y0 := r.Y * cellsPerTileY / v.tile
	y1 := (r.Bottom()*cellsPerTileY + v.tile - 1) / v.tile

	x0 = core.Clamp(x0, 0, v.cols)
	x1 = core.Clamp(x1, 0, v.cols)
	y0 = core.Clamp(y0, 0, v.rows)
	y1 = core.Clamp(y1, 0, v.rows)

	dst.DrawRectColored(core.NewRect(v.offX+x0, v.offY+y0, x1-x0, y1-y0), ch, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
// The box is two cells wider than the text on each side, so centering the
// text on the screen keeps it inside the box.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
