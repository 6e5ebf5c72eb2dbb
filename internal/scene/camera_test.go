package scene

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCamera_Zoom(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, HomePose(), c.Pose())

	c.Zoom(0.8)
	assert.InDelta(t, 24.0, c.Pose().Distance(), 1e-9)
	c.Zoom(1.2)
	assert.InDelta(t, 28.8, c.Pose().Distance(), 1e-9)

	for i := 0; i < 100; i++ {
		c.Zoom(0.5)
	}
	assert.InDelta(t, minDistance, c.Pose().Distance(), 1e-9)
}

func TestCamera_ResetEases(t *testing.T) {
	c := NewCamera()
	c.Zoom(0.5)
	c.Orbit(1, 0.5)
	start := c.Pose()

	c.Reset(800 * time.Millisecond)
	require.True(t, c.Animating())
	assert.Equal(t, start, c.Pose(), "nothing moves before time passes")

	c.Advance(400 * time.Millisecond)
	mid := c.Pose()
	assert.NotEqual(t, start, mid)
	assert.NotEqual(t, HomePose(), mid)

	c.Advance(400 * time.Millisecond)
	assert.False(t, c.Animating())
	assert.Equal(t, HomePose(), c.Pose())
	assert.False(t, c.Advance(time.Second))
}

func TestCamera_ResetWithoutDurationJumps(t *testing.T) {
	c := NewCamera()
	c.Zoom(2)
	c.Reset(0)
	assert.Equal(t, HomePose(), c.Pose())
}

func TestCamera_OrbitKeepsDistance(t *testing.T) {
	c := NewCamera()
	c.Orbit(0.3, 10)
	assert.InDelta(t, DefaultDistance, c.Pose().Distance(), 1e-9)
	el := math.Asin(c.Pose().Position.Y / DefaultDistance)
	assert.LessOrEqual(t, el, maxPitch+1e-9)
}

func TestCamera_ProjectAndRay(t *testing.T) {
	c := NewCamera()
	const w, h = 80, 24

	col, row, depth, ok := c.Project(r3.Vec{}, w, h)
	require.True(t, ok)
	assert.InDelta(t, 40, col, 1e-9)
	assert.InDelta(t, 12, row, 1e-9)
	assert.InDelta(t, DefaultDistance, depth, 1e-9)

	_, _, _, ok = c.Project(r3.Vec{Z: 40}, w, h)
	assert.False(t, ok, "behind the camera")

	p := r3.Vec{X: 5, Y: 3}
	col, row, _, ok = c.Project(p, w, h)
	require.True(t, ok)
	ray := c.Ray(int(col), int(row), w, h)
	assert.Less(t, ray.Distance(p), 1.0)
}

func TestEaseInOut(t *testing.T) {
	assert.Equal(t, 0.0, easeInOut(-1))
	assert.Equal(t, 1.0, easeInOut(2))
	assert.InDelta(t, 0.5, easeInOut(0.5), 1e-9)
	assert.Less(t, easeInOut(0.25), 0.25)
}
