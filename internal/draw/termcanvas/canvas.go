// Package termcanvas implements draw.Context on a grid of terminal cells. A canvas keeps a logical
// size in pixels, like a browser canvas, and maps every cell onto a fixed block of those pixels.
// Shapes colour cell backgrounds, strokes and text put runes in cells, and View renders the grid
// with lipgloss.
package termcanvas

import (
	"image/color"
	"math"

	"github.com/bcdxn/camelrace/internal/draw"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultCellWidth  = 10.0
	DefaultCellHeight = 20.0
	// arcSegments is the number of line segments used to approximate a full circle.
	arcSegments = 48
	// samples is the number of sample points per axis used to decide whether a cell is covered by
	// a filled path.
	samples = 4
)

// New returns a blank canvas with the given logical size in pixels.
func New(width, height float64, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		width:      width,
		height:     height,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
		fill:       draw.Black,
		stroke:     draw.Black,
		lineWidth:  1,
		font:       draw.Font{Size: 10, Family: "sans-serif"},
	}
	// apply given options
	for _, opt := range opts {
		opt(c)
	}
	c.cols = int(math.Ceil(width / c.cellWidth))
	c.rows = int(math.Ceil(height / c.cellHeight))
	c.cells = make([]Cell, c.cols*c.rows)
	c.clearCells(0, 0, c.cols, c.rows)
	return c
}

type CanvasOption = func(c *Canvas)

// WithCellSize configures how many pixels a terminal cell covers.
func WithCellSize(w, h float64) CanvasOption {
	return func(c *Canvas) {
		if w > 0 && h > 0 {
			c.cellWidth, c.cellHeight = w, h
		}
	}
}

// Canvas is a terminal backed draw.Context and draw.Surface. It is not safe for concurrent use; a
// canvas belongs to the goroutine that draws and views it.
type Canvas struct {
	width, height         float64
	cellWidth, cellHeight float64
	cols, rows            int
	cells                 []Cell
	// drawing state
	fill      draw.Paint
	stroke    draw.Paint
	lineWidth float64
	dash      []float64
	font      draw.Font
	align     draw.Align
	path      [][]point
}

// Cell is the content of a single terminal cell.
type Cell struct {
	Rune rune // Rune is the glyph in the cell, ' ' when empty and 0 when covered by a wide rune
	FG   color.NRGBA
	BG   color.NRGBA
	Bold bool
}

type point struct{ x, y float64 }

// Context2D implements draw.Surface.
func (c *Canvas) Context2D() (draw.Context, bool) {
	return c, true
}

// Cols returns the number of cell columns.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the number of cell rows.
func (c *Canvas) Rows() int { return c.rows }

// Cell returns the cell at the given column and row; out of range positions return an empty cell.
func (c *Canvas) Cell(col, row int) Cell {
	if !c.inside(col, row) {
		return Cell{Rune: ' '}
	}
	return c.cells[row*c.cols+col]
}

// CellAt returns the cell covering the given pixel position.
func (c *Canvas) CellAt(x, y float64) Cell {
	return c.Cell(int(math.Floor(x/c.cellWidth)), int(math.Floor(y/c.cellHeight)))
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

func (c *Canvas) at(col, row int) *Cell {
	return &c.cells[row*c.cols+col]
}

func (c *Canvas) clearCells(col0, row0, col1, row1 int) {
	for row := max(row0, 0); row < min(row1, c.rows); row++ {
		for col := max(col0, 0); col < min(col1, c.cols); col++ {
			*c.at(col, row) = Cell{Rune: ' '}
		}
	}
}

// cellSpan returns the half open range of cells that a pixel span [from, to) touches.
func cellSpan(from, to, size float64, limit int) (int, int) {
	lo := int(math.Floor(from / size))
	hi := int(math.Ceil(to / size))
	return max(lo, 0), min(hi, limit)
}

/* draw.Context Implementation
------------------------------------------------------------------------------------------------- */

func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

func (c *Canvas) ClearRect(x, y, w, h float64) {
	x, y, w, h = normalize(x, y, w, h)
	col0, col1 := cellSpan(x, x+w, c.cellWidth, c.cols)
	row0, row1 := cellSpan(y, y+h, c.cellHeight, c.rows)
	c.clearCells(col0, row0, col1, row1)
}

// FillRect fills every cell the rectangle covers by at least half of the smaller of the cell and
// the rectangle in each direction, so thin shapes such as legs survive the coarse grid.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x, y, w, h = normalize(x, y, w, h)
	if w == 0 || h == 0 {
		return
	}
	col0, col1 := cellSpan(x, x+w, c.cellWidth, c.cols)
	row0, row1 := cellSpan(y, y+h, c.cellHeight, c.rows)
	minX := math.Min(w, c.cellWidth) / 2
	minY := math.Min(h, c.cellHeight) / 2
	for row := row0; row < row1; row++ {
		top := float64(row) * c.cellHeight
		if overlap(y, y+h, top, top+c.cellHeight) < minY {
			continue
		}
		for col := col0; col < col1; col++ {
			left := float64(col) * c.cellWidth
			if overlap(x, x+w, left, left+c.cellWidth) < minX {
				continue
			}
			c.paintCell(col, row, c.fill)
		}
	}
}

func (c *Canvas) SetFillStyle(p draw.Paint) {
	if p != nil {
		c.fill = p
	}
}

func (c *Canvas) SetStrokeStyle(p draw.Paint) {
	if p != nil {
		c.stroke = p
	}
}

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.lineWidth = w
	}
}

func (c *Canvas) SetLineDash(segments []float64) {
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return
		}
	}
	c.dash = append([]float64(nil), segments...)
	if len(c.dash)%2 == 1 {
		c.dash = append(c.dash, c.dash...)
	}
}

func (c *Canvas) BeginPath() {
	c.path = nil
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, []point{{x, y}})
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := len(c.path) - 1
	c.path[last] = append(c.path[last], point{x, y})
}

func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64) {
	if radius < 0 {
		panic("termcanvas: negative arc radius")
	}
	sweep := endAngle - startAngle
	if sweep == 0 {
		c.LineTo(x+radius*math.Cos(startAngle), y+radius*math.Sin(startAngle))
		return
	}
	if sweep < 0 {
		sweep = math.Mod(sweep, 2*math.Pi) + 2*math.Pi
	}
	sweep = math.Min(sweep, 2*math.Pi)
	n := max(int(math.Ceil(sweep/(2*math.Pi)*arcSegments)), 1)
	for i := 0; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		c.LineTo(x+radius*math.Cos(a), y+radius*math.Sin(a))
	}
}

// Fill fills the current path with the even-odd rule; every sub path is implicitly closed.
func (c *Canvas) Fill() {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, sub := range c.path {
		for _, p := range sub {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if minX >= maxX || minY >= maxY {
		return
	}
	col0, col1 := cellSpan(minX, maxX, c.cellWidth, c.cols)
	row0, row1 := cellSpan(minY, maxY, c.cellHeight, c.rows)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			if c.covered(col, row) {
				c.paintCell(col, row, c.fill)
			}
		}
	}
}

// Stroke draws the current path with box drawing runes. The path is sampled once per cell along
// its dominant axis and the dash pattern is evaluated at every sample.
func (c *Canvas) Stroke() {
	for _, sub := range c.path {
		var travelled float64
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			length := math.Hypot(b.x-a.x, b.y-a.y)
			if length == 0 {
				continue
			}
			step := c.cellWidth * length / math.Abs(b.x-a.x)
			if dy := math.Abs(b.y - a.y); dy/c.cellHeight > math.Abs(b.x-a.x)/c.cellWidth {
				step = c.cellHeight * length / dy
			}
			glyph := c.strokeGlyph(a, b)
			for d := step / 2; d < length; d += step {
				if c.dashOn(travelled + d) {
					t := d / length
					c.strokeAt(a.x+(b.x-a.x)*t, a.y+(b.y-a.y)*t, glyph)
				}
			}
			travelled += length
		}
	}
}

func (c *Canvas) SetFont(f draw.Font) {
	if f.Size > 0 {
		c.font = f
	}
}

func (c *Canvas) SetTextAlign(a draw.Align) {
	c.align = a
}

// FillText writes text on the row holding the middle of the glyphs whose baseline is at y.
func (c *Canvas) FillText(text string, x, y float64) {
	width := float64(runewidth.StringWidth(text)) * c.cellWidth
	switch c.align {
	case draw.AlignCenter:
		x -= width / 2
	case draw.AlignRight:
		x -= width
	}
	row := int(math.Floor((y - c.font.Size*0.35) / c.cellHeight))
	if row < 0 || row >= c.rows {
		return
	}
	col := int(math.Round(x / c.cellWidth))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.cols {
			fg := c.fill.At((float64(col)+0.5)*c.cellWidth, (float64(row)+0.5)*c.cellHeight)
			c.putRune(col, row, r, w, fg, c.font.Bold)
		}
		col += w
	}
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

func (c *Canvas) paintCell(col, row int, p draw.Paint) {
	cell := c.at(col, row)
	src := p.At((float64(col)+0.5)*c.cellWidth, (float64(row)+0.5)*c.cellHeight)
	cell.BG = draw.Over(src, cell.BG)
	if src.A == 0xff {
		c.putRune(col, row, ' ', 1, color.NRGBA{}, false)
		return
	}
	if cell.Rune != ' ' {
		cell.FG = draw.Over(src, cell.FG)
	}
}

// putRune writes a rune of display width w, clearing any wide rune it partially overwrites.
func (c *Canvas) putRune(col, row int, r rune, w int, fg color.NRGBA, bold bool) {
	if col > 0 && c.at(col, row).Rune == 0 {
		c.at(col-1, row).Rune = ' '
	}
	if end := col + w; end < c.cols && c.at(end, row).Rune == 0 {
		c.at(end, row).Rune = ' '
	}
	head := c.at(col, row)
	head.Rune, head.FG, head.Bold = r, fg, bold
	for i := 1; i < w; i++ {
		cont := c.at(col+i, row)
		cont.Rune, cont.FG, cont.Bold = 0, fg, bold
	}
}

func (c *Canvas) covered(col, row int) bool {
	for sy := 0; sy < samples; sy++ {
		y := (float64(row) + (float64(sy)+0.5)/samples) * c.cellHeight
		for sx := 0; sx < samples; sx++ {
			x := (float64(col) + (float64(sx)+0.5)/samples) * c.cellWidth
			if c.inPath(x, y) {
				return true
			}
		}
	}
	return false
}

func (c *Canvas) inPath(x, y float64) bool {
	in := false
	for _, sub := range c.path {
		n := len(sub)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := sub[i], sub[j]
			if (a.y > y) != (b.y > y) && x < (b.x-a.x)*(y-a.y)/(b.y-a.y)+a.x {
				in = !in
			}
		}
	}
	return in
}

func (c *Canvas) dashOn(distance float64) bool {
	if len(c.dash) == 0 {
		return true
	}
	var period float64
	for _, s := range c.dash {
		period += s
	}
	if period == 0 {
		return true
	}
	d := math.Mod(distance, period)
	for i, s := range c.dash {
		if d < s {
			return i%2 == 0
		}
		d -= s
	}
	return false
}

func (c *Canvas) strokeGlyph(a, b point) rune {
	heavy := c.lineWidth >= c.cellHeight/2
	dx, dy := math.Abs(b.x-a.x)/c.cellWidth, math.Abs(b.y-a.y)/c.cellHeight
	switch {
	case dy <= dx/2 && heavy:
		return '━'
	case dy <= dx/2:
		return '─'
	case dx <= dy/2 && heavy:
		return '┃'
	case dx <= dy/2:
		return '│'
	case (b.x-a.x)*(b.y-a.y) < 0:
		return '╱'
	default:
		return '╲'
	}
}

func (c *Canvas) strokeAt(x, y float64, glyph rune) {
	col, row := int(math.Floor(x/c.cellWidth)), int(math.Floor(y/c.cellHeight))
	if !c.inside(col, row) {
		return
	}
	fg := draw.Over(c.stroke.At(x, y), c.at(col, row).BG)
	c.putRune(col, row, glyph, 1, fg, false)
}

func normalize(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func overlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}
