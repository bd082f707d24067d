package window

// cursorTracker turns absolute cursor positions into deltas.
type cursorTracker struct {
	x, y  float64
	valid bool
}

// move records a new cursor position and returns the movement since the previous one.
// ok is false for the first position after a reset.
func (c *cursorTracker) move(x, y float64) (dx, dy float32, ok bool) {
	if c.valid {
		dx, dy, ok = float32(x-c.x), float32(y-c.y), true
	}
	c.x, c.y, c.valid = x, y, true
	return dx, dy, ok
}

func (c *cursorTracker) reset() {
	c.valid = false
}
