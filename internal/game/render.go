package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/shrinking-snake/internal/core"
)

// Surface receives a repaint: a clear followed by cell batches.
// Cells are in board units, size is the cell edge length.
type Surface interface {
	Clear()
	DrawCells(color core.Color, size int, cells []core.Cell)
}

// Palette.
const (
	colorHead      = core.ColorBrightYellow
	colorBody      = core.ColorGreen
	colorFood      = core.ColorRed
	colorCollapsed = core.ColorDarkGray
	colorFrame     = core.ColorGray
	colorHUD       = core.ColorBrightWhite
	colorHint      = core.ColorGray
)

const hudHeight = 2

// repaint redraws the surface from the current state: the collapsed margin,
// then the snake with its head marked, then the food.
func (g *Game) repaint() {
	if g.surface == nil {
		return
	}
	g.repaints++
	step := g.board.Step()

	g.surface.Clear()
	g.surface.DrawCells(colorCollapsed, step, g.collapsedCells())

	body := g.snake.Body()
	if len(body) > 1 {
		g.surface.DrawCells(colorBody, step, body[1:])
	}
	if len(body) > 0 {
		g.surface.DrawCells(colorHead, step, body[:1])
	}
	if g.hasFood {
		g.surface.DrawCells(colorFood, step, []core.Cell{g.food})
	}
}

// collapsedCells lists the cells the board has lost to shrinking.
func (g *Game) collapsedCells() []core.Cell {
	step := g.board.Step()
	full := g.cfg.Board.Size
	side := g.board.Side()
	if side >= full {
		return nil
	}
	var cells []core.Cell
	for y := 0; y < full; y += step {
		for x := 0; x < full; x += step {
			if x >= side || y >= side {
				cells = append(cells, core.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// RequiredSize returns the smallest screen that fits the HUD and the framed
// full-size board.
func (g *Game) RequiredSize() (w, h int) {
	cw, ch := g.canvas.Footprint()
	return cw + 2, hudHeight + ch + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.RequiredSize()
		g.renderOverlay(dst,
			overlayLine{"Window too small", core.ColorYellow},
			overlayLine{fmt.Sprintf("Need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()), core.ColorDefault},
			overlayLine{"Resize to continue", colorHint},
		)
		return
	}

	cw, ch := g.canvas.Footprint()
	x0 := (dst.Width() - (cw + 2)) / 2
	y0 := hudHeight
	dst.DrawBox(core.NewRect(x0, y0, cw+2, ch+2), colorFrame)
	g.canvas.Blit(dst, x0+1, y0+1)

	if hint := g.hint(); hint != "" && y0+ch+2 < dst.Height() {
		dst.DrawTextCentered(y0+ch+2, hint, colorHint)
	}

	switch {
	case g.gameOver:
		lines := []overlayLine{
			{"Game Over", core.ColorRed},
			{g.cause.Message(), core.ColorDefault},
			{fmt.Sprintf("Score: %d", g.score), colorHUD},
		}
		if g.newBest {
			lines = append(lines, overlayLine{"New best score!", core.ColorBrightGreen})
		} else {
			lines = append(lines, overlayLine{fmt.Sprintf("Best: %d", g.best), colorHint})
		}
		lines = append(lines, overlayLine{"R or Enter to play again", colorHint})
		g.renderOverlay(dst, lines...)
	case g.paused:
		g.renderOverlay(dst,
			overlayLine{"Paused", core.ColorYellow},
			overlayLine{"Press P to continue", colorHint},
		)
	}
}

func (g *Game) hint() string {
	switch {
	case g.gameOver:
		return ""
	case !g.moving:
		return "Press an arrow key to start"
	default:
		return "arrows/wasd/hjkl move  p pause  q quit"
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	side := g.board.Side()
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d  Board: %dx%d", g.Title(), g.score, g.best, side, side)
	dst.DrawTextColored(0, 0, hud, colorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', colorFrame)
}

type overlayLine struct {
	text  string
	color core.Color
}

// renderOverlay draws a centered framed box holding the given lines.
func (g *Game) renderOverlay(dst *core.Screen, lines ...overlayLine) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l.text))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, colorFrame)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l.text, l.color)
	}
}
