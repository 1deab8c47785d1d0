package scene

import (
	"math"

	"github.com/llehouerou/pixelpop/internal/ui/styles"
)

// Title is drawn centered at the top of the scene.
const Title = "PIXELPOP"

const (
	deckW = 44
	deckH = 10

	reelRX = 5.0
	reelRY = 2.0

	eqRows = 3
)

var eqBlocks = []rune(" ▁▂▃▄▅▆▇█")

// Render draws the scene into a width×height block of styled text.
func (a *AnimationState) Render(width, height int, playing bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	t := styles.T()
	c := newCanvas(width, height)

	drawBackdrop(c)
	drawTitle(c, width)
	a.drawSparkles(c)

	deckX := (width - deckW) / 2
	deckY := height - deckH - 1
	if deckX < 1 || deckY < SparkleBand+2 {
		// No room for the deck: keep the equalizer along the bottom row.
		a.drawEQ(c, max(0, (width-EQBars*2)/2), height-1, 1)
		return c.String()
	}

	drawDeck(c, deckX, deckY)
	theta := a.ReelAngle(playing)
	for _, cx := range []int{deckX + 12, deckX + 31} {
		drawReel(c, Point{X: float64(cx), Y: float64(deckY + 3)}, theta)
	}
	a.drawEQ(c, deckX+3, deckY+8, eqRows)
	c.text(deckX+3, deckY+deckH-1, " A-SIDE ", t.Gold)

	return c.String()
}

func drawBackdrop(c *canvas) {
	t := styles.T()
	for y := range c.h {
		for x := range c.w {
			bg := t.Bg
			if (x/2+y)%2 == 1 {
				bg = t.Bg2
			}
			c.paint(x, y, bg)
		}
	}
}

func drawTitle(c *canvas, width int) {
	t := styles.T()
	runes := []rune(Title)
	x0 := (width - len(runes)) / 2
	for i, r := range runes {
		col := styles.Blend(t.Pink, t.Mint, float64(i)/float64(max(1, len(runes)-1)))
		c.put(x0+i, 1, r, col, true)
	}
}

func (a *AnimationState) drawSparkles(c *canvas) {
	t := styles.T()
	for _, p := range a.Particles {
		col := t.Accent2
		if p.Bright() {
			col = t.Highlight
		}
		glyph := '·'
		switch {
		case p.Size() >= 5:
			glyph = '✦'
		case p.Size() >= 3:
			glyph = '+'
		}
		c.put(p.X, 2+p.Y, glyph, col, p.Size() >= 5)
	}
}

func drawDeck(c *canvas, x0, y0 int) {
	t := styles.T()
	for y := range deckH {
		for x := range deckW {
			c.paint(x0+x, y0+y, t.Panel)
		}
	}
	for y := 1; y <= 5; y++ {
		for x := 3; x < deckW-3; x++ {
			c.paint(x0+x, y0+y, t.Window)
		}
	}

	for x := 1; x < deckW-1; x++ {
		c.put(x0+x, y0, '─', t.Accent2, false)
		c.put(x0+x, y0+deckH-1, '─', t.Accent2, false)
	}
	for y := 1; y < deckH-1; y++ {
		c.put(x0, y0+y, '│', t.Accent2, false)
		c.put(x0+deckW-1, y0+y, '│', t.Accent2, false)
	}
	c.put(x0, y0, '╭', t.Accent2, false)
	c.put(x0+deckW-1, y0, '╮', t.Accent2, false)
	c.put(x0, y0+deckH-1, '╰', t.Accent2, false)
	c.put(x0+deckW-1, y0+deckH-1, '╯', t.Accent2, false)
}

func drawReel(c *canvas, center Point, theta float64) {
	t := styles.T()
	for dy := -int(reelRY); dy <= int(reelRY); dy++ {
		for dx := -int(reelRX); dx <= int(reelRX); dx++ {
			nx := float64(dx) / reelRX
			ny := float64(dy) / reelRY
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			bg := t.Reel
			if d > 0.7 {
				bg = t.ReelRim
			}
			c.paint(int(center.X)+dx, int(center.Y)+dy, bg)
		}
	}

	for _, tip := range Spokes(center, reelRX-1, reelRY, theta) {
		for _, f := range []float64{0.5, 1} {
			x := center.X + (tip.X-center.X)*f
			y := center.Y + (tip.Y-center.Y)*f
			c.put(int(math.Round(x)), int(math.Round(y)), '•', t.Spoke, true)
		}
	}
	c.put(int(center.X), int(center.Y), '◉', t.Spoke, true)
}

// drawEQ draws the bars bottom-up from row y with eighth-block resolution.
func (a *AnimationState) drawEQ(c *canvas, x0, y, rows int) {
	t := styles.T()
	for i, v := range a.EQ {
		col := styles.Blend(t.Gold, t.Accent, v)
		eighths := int(math.Round(v * float64(rows*8)))
		for r := range rows {
			level := max(0, min(8, eighths-r*8))
			if level == 0 {
				continue
			}
			c.put(x0+i*2, y-r, eqBlocks[level], col, false)
		}
	}
}
