package core

// Half-block glyphs used to pack two board rows into one terminal row.
const (
	glyphUpper = '▀'
	glyphLower = '▄'
	glyphFull  = '█'
)

// Canvas is a square drawing surface measured in board units.
// Each grid cell becomes one terminal column; two grid rows share one
// terminal row through half-block glyphs, so a 50x50 board fits in 50x25.
type Canvas struct {
	step  int
	cols  int
	rows  int
	cells []Color
}

// NewCanvas creates a canvas covering a width x height area in board units.
func NewCanvas(width, height, step int) *Canvas {
	if step <= 0 {
		step = Step
	}
	c := &Canvas{
		step: step,
		cols: max(width/step, 0),
		rows: max(height/step, 0),
	}
	c.cells = make([]Color, c.cols*c.rows)
	return c
}

// Clear erases everything drawn so far.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ColorDefault
	}
}

// DrawCells paints each cell of the given size with color.
// Cells outside the canvas are skipped.
func (c *Canvas) DrawCells(color Color, size int, cells []Cell) {
	if size <= 0 {
		size = c.step
	}
	for _, cell := range cells {
		if cell.X < 0 || cell.Y < 0 {
			continue
		}
		col, row := cell.X/size, cell.Y/size
		if col >= c.cols || row >= c.rows {
			continue
		}
		c.cells[row*c.cols+col] = color
	}
}

// At returns the color painted at grid column col and row row.
func (c *Canvas) At(col, row int) Color {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ColorDefault
	}
	return c.cells[row*c.cols+col]
}

// Footprint returns the canvas size in terminal characters.
func (c *Canvas) Footprint() (w, h int) {
	return c.cols, (c.rows + 1) / 2
}

// Blit copies the canvas onto dst with its top-left corner at (x, y).
func (c *Canvas) Blit(dst *Screen, x, y int) {
	_, h := c.Footprint()
	for ty := 0; ty < h; ty++ {
		for col := 0; col < c.cols; col++ {
			top := c.At(col, ty*2)
			bottom := c.At(col, ty*2+1)
			dst.SetCell(x+col, y+ty, halfBlock(top, bottom))
		}
	}
}

// halfBlock picks the glyph and colors showing top above bottom.
func halfBlock(top, bottom Color) ScreenCell {
	switch {
	case top == ColorDefault && bottom == ColorDefault:
		return blankCell
	case top == bottom:
		return ScreenCell{Rune: glyphFull, Color: top}
	case top == ColorDefault:
		return ScreenCell{Rune: glyphLower, Color: bottom}
	default:
		return ScreenCell{Rune: glyphUpper, Color: top, Bg: bottom}
	}
}
