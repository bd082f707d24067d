package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorTracker(t *testing.T) {
	var c cursorTracker

	_, _, ok := c.move(100, 50)
	assert.False(t, ok, "first sample has no reference point")

	dx, dy, ok := c.move(103, 46)
	assert.True(t, ok)
	assert.Equal(t, float32(3), dx)
	assert.Equal(t, float32(-4), dy)

	c.reset()
	_, _, ok = c.move(500, 500)
	assert.False(t, ok)

	dx, dy, ok = c.move(500, 510)
	assert.True(t, ok)
	assert.Zero(t, dx)
	assert.Equal(t, float32(10), dy)
}
