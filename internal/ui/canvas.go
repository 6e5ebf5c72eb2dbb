package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/scene"
)

// Glyphs used by the rasterizer.
const (
	glyphPoint    = '●'
	glyphSelected = '◉'
	glyphLinked   = '○'
	glyphDimmed   = '·'
	glyphLine     = '∙'
	glyphCentroid = '+'
)

type cell struct {
	r     rune
	color string
	bold  bool
	depth float64
	set   bool

	// pinned cells belong to the selection and are never overwritten
	pinned bool
}

// Canvas rasterizes scene frames onto a character grid. Nearer geometry wins
// each cell; labels are drawn over geometry, and the selected point's glyph
// and label over everything.
type Canvas struct {
	w, h  int
	cells []cell
	color bool

	// Words labels every undimmed point with its word, behind explicit labels.
	Words bool
}

// NewCanvas allocates a w×h grid. With color false the output is plain text.
func NewCanvas(w, h int, color bool) *Canvas {
	w, h = max(w, 1), max(h, 1)
	return &Canvas{w: w, h: h, cells: make([]cell, w*h), color: color}
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

func (c *Canvas) put(col, row int, r rune, color string, depth float64, bold bool) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	cl := &c.cells[row*c.w+col]
	if cl.pinned || (cl.set && cl.depth < depth) {
		return
	}
	*cl = cell{r: r, color: color, bold: bold, depth: depth, set: true}
}

// pin writes a cell unconditionally and protects it from later writes.
func (c *Canvas) pin(col, row int, r rune, color string, bold bool) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.cells[row*c.w+col] = cell{r: r, color: color, bold: bold, depth: math.Inf(-1), set: true, pinned: true}
}

// text writes s starting at (col,row), clipped to the grid.
func (c *Canvas) text(col, row int, s, color string, bold bool, depth float64) {
	c.write(col, row, s, func(col int, r rune) { c.put(col, row, r, color, depth, bold) })
}

// write lays out the runes of s from col, calling set for every cell a rune
// occupies; continuation cells of wide runes get rune 0.
func (c *Canvas) write(col, row int, s string, set func(col int, r rune)) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.w {
			return
		}
		set(col, r)
		for k := 1; k < w; k++ {
			set(col+k, 0)
		}
		col += w
	}
}

// labelCol places a label right of the anchor cell, or left of it when it
// would not fit.
func (c *Canvas) labelCol(x int, s string) int {
	w := runewidth.StringWidth(s)
	if x+2+w <= c.w {
		return x + 2
	}
	return max(0, x-1-w)
}

// Draw rasterizes f as seen from cam. Lines first, then group markers, then
// points, then labels.
func (c *Canvas) Draw(f scene.Frame, cam *scene.Camera) {
	c.clear()
	if f.Placeholder != "" {
		row := c.h / 2
		col := max(0, (c.w-runewidth.StringWidth(f.Placeholder))/2)
		c.text(col, row, f.Placeholder, "", false, 0)
		return
	}

	project := func(p r3.Vec) (int, int, float64, bool) {
		x, y, z, ok := cam.Project(p, c.w, c.h)
		if !ok {
			return 0, 0, 0, false
		}
		return int(math.Floor(x)), int(math.Floor(y)), z, true
	}

	for _, l := range f.Lines {
		x0, y0, z0, ok0 := project(l.From)
		x1, y1, z1, ok1 := project(l.To)
		if !ok0 || !ok1 {
			continue
		}
		// push lines behind points at the same depth
		c.line(x0, y0, x1, y1, l.Color, math.Max(z0, z1)+0.5)
	}

	for _, g := range f.Groups {
		x, y, z, ok := project(g.Centroid)
		if !ok {
			continue
		}
		c.put(x, y, glyphCentroid, g.Color, z+1, g.Active)
	}

	for _, p := range f.Points {
		x, y, z, ok := project(p.Pos)
		if !ok {
			continue
		}
		if p.Selected {
			c.pin(x, y, glyphSelected, p.Color, true)
			continue
		}
		r := glyphPoint
		switch {
		case p.Dimmed:
			r = glyphDimmed
		case p.Linked:
			r = glyphLinked
		}
		c.put(x, y, r, p.Color, z, false)
		if c.Words && !p.Dimmed {
			c.text(x+2, y, p.Word, p.Color, false, z+0.25)
		}
	}

	// the selected label goes first so it pins its cells before the others
	labels := make([]scene.LabelCmd, 0, len(f.Labels))
	for _, l := range f.Labels {
		if l.Selected {
			labels = append(labels, l)
		}
	}
	for _, l := range f.Labels {
		if !l.Selected {
			labels = append(labels, l)
		}
	}
	for _, l := range labels {
		x, y, _, ok := project(l.At)
		if !ok {
			continue
		}
		col := c.labelCol(x, l.Text)
		if l.Selected {
			c.write(col, y, l.Text, func(col int, r rune) { c.pin(col, y, r, l.Color, true) })
			continue
		}
		c.text(col, y, l.Text, l.Color, true, math.Inf(-1))
	}
}

// line draws a Bresenham segment between two cells.
func (c *Canvas) line(x0, y0, x1, y1 int, color string, depth float64) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	// bound the walk so a wild projection cannot stall a frame
	for n := 0; n <= c.w+c.h+dx-dy; n++ {
		c.put(x0, y0, glyphLine, color, depth, false)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// String renders the grid, one line per row. Runs of equally styled cells
// share one lipgloss render.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.h; row++ {
		var run strings.Builder
		runColor, runBold := "", false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			s := run.String()
			if c.color && runColor != "" {
				st := lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Bold(runBold)
				s = st.Render(s)
			}
			b.WriteString(s)
			run.Reset()
		}
		for col := 0; col < c.w; col++ {
			cl := c.cells[row*c.w+col]
			if cl.set && cl.r == 0 {
				continue
			}
			r, color, bold := ' ', "", false
			if cl.set {
				r, color, bold = cl.r, cl.color, cl.bold
			}
			if color != runColor || bold != runBold {
				flush()
				runColor, runBold = color, bold
			}
			run.WriteRune(r)
		}
		flush()
		if row < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render is a convenience for one-shot output.
func Render(f scene.Frame, cam *scene.Camera, w, h int, color bool) string {
	c := NewCanvas(w, h, color)
	c.Words = true
	c.Draw(f, cam)
	return c.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
