package scene

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r    rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

// canvas is a grid of single-width cells rendered as styled runs.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

// paint sets the background of a cell and clears its glyph.
func (c *canvas) paint(x, y int, bg lipgloss.Color) {
	if !c.in(x, y) {
		return
	}
	c.cells[y*c.w+x] = cell{r: ' ', bg: bg}
}

// put draws a glyph, keeping the cell's background.
func (c *canvas) put(x, y int, r rune, fg lipgloss.Color, bold bool) {
	if !c.in(x, y) {
		return
	}
	cl := &c.cells[y*c.w+x]
	cl.r, cl.fg, cl.bold = r, fg, bold
}

func (c *canvas) text(x, y int, s string, fg lipgloss.Color) {
	for i, r := range []rune(s) {
		c.put(x+i, y, r, fg, false)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		row := c.cells[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && sameStyle(row[end], row[start]) {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				if cl.r == 0 {
					run.WriteRune(' ')
				} else {
					run.WriteRune(cl.r)
				}
			}
			st := lipgloss.NewStyle().Background(row[start].bg).Bold(row[start].bold)
			if row[start].fg != "" {
				st = st.Foreground(row[start].fg)
			}
			b.WriteString(st.Render(run.String()))
			start = end
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}
