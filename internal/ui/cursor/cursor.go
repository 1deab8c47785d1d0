// Package cursor tracks a selection and scroll window over a list whose
// length can change between calls.
package cursor

// Cursor holds the selected index and the first visible row.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible around pos
}

// New creates a cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the first visible index.
func (c Cursor) Offset() int { return c.offset }

// Move shifts the selection by delta, clamped to the list.
func (c *Cursor) Move(delta, n, height int) {
	c.Jump(c.pos+delta, n, height)
}

// Jump selects index i, clamped to the list. No-op on an empty list.
func (c *Cursor) Jump(i, n, height int) {
	if n == 0 {
		return
	}
	c.pos = max(0, min(i, n-1))
	c.scroll(n, height)
}

// Clamp pulls the cursor back inside a list that may have shrunk.
func (c *Cursor) Clamp(n, height int) {
	if n == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.Jump(c.pos, n, height)
}

func (c *Cursor) scroll(n, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = max(0, min(c.offset, n-height))
}

// Visible returns the half-open range of rows on screen.
func (c Cursor) Visible(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

// HandleKey applies list navigation keys. Returns true if key was one.
func (c *Cursor) HandleKey(key string, n, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, n, height)
	case "k", "up":
		c.Move(-1, n, height)
	case "g", "home":
		c.Jump(0, n, height)
	case "G", "end":
		c.Jump(n-1, n, height)
	default:
		return false
	}
	return true
}
