// Package scene drives the interactive point-cloud view: camera, picking,
// cosmetic motion and per-frame render commands. Nothing here draws; the
// terminal surface consumes Frame values.
package scene

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultDistance is how far the home camera sits from the origin.
	DefaultDistance = 30.0
	// DefaultFOV is the vertical field of view in radians.
	DefaultFOV = math.Pi / 3
	// CellAspect is the height/width ratio of a terminal cell.
	CellAspect = 2.0

	minDistance = 2.0
	maxDistance = 400.0
	maxPitch    = 85 * math.Pi / 180
	nearPlane   = 0.1
)

var worldUp = r3.Vec{Y: 1}

// Pose is where the camera is and what it looks at.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
}

// HomePose looks at the origin from +Z.
func HomePose() Pose {
	return Pose{Position: r3.Vec{Z: DefaultDistance}}
}

func (p Pose) offset() r3.Vec { return r3.Sub(p.Position, p.Target) }

// Distance from the camera to its target.
func (p Pose) Distance() float64 { return r3.Norm(p.offset()) }

func lerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: r3.Add(a.Position, r3.Scale(t, r3.Sub(b.Position, a.Position))),
		Target:   r3.Add(a.Target, r3.Scale(t, r3.Sub(b.Target, a.Target))),
	}
}

// easeInOut is a cubic ease on [0,1].
func easeInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

type tween struct {
	from, to Pose
	elapsed  time.Duration
	duration time.Duration
}

// Camera is a perspective camera with an optional pose transition in flight.
type Camera struct {
	pose Pose
	home Pose
	fov  float64
	anim *tween
}

// NewCamera returns a camera at the home pose.
func NewCamera() *Camera {
	return &Camera{pose: HomePose(), home: HomePose(), fov: DefaultFOV}
}

func (c *Camera) Pose() Pose { return c.pose }

// Animating reports whether a transition is in progress.
func (c *Camera) Animating() bool { return c.anim != nil }

// MoveTo eases the camera to p over d. A non-positive d jumps immediately.
func (c *Camera) MoveTo(p Pose, d time.Duration) {
	if d <= 0 {
		c.pose, c.anim = p, nil
		return
	}
	c.anim = &tween{from: c.pose, to: p, duration: d}
}

// Reset eases back to the home pose.
func (c *Camera) Reset(d time.Duration) { c.MoveTo(c.home, d) }

// Advance moves an in-flight transition forward by dt and reports whether the
// pose changed.
func (c *Camera) Advance(dt time.Duration) bool {
	if c.anim == nil {
		return false
	}
	c.anim.elapsed += dt
	t := float64(c.anim.elapsed) / float64(c.anim.duration)
	c.pose = lerpPose(c.anim.from, c.anim.to, easeInOut(t))
	if t >= 1 {
		c.pose = c.anim.to
		c.anim = nil
	}
	return true
}

// Zoom scales the distance to the target by factor. Any transition is
// dropped so the zoom applies to what the user sees.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.anim = nil
	off := c.pose.offset()
	d := r3.Norm(off)
	if d == 0 {
		off, d = r3.Vec{Z: 1}, 1
	}
	nd := math.Max(minDistance, math.Min(maxDistance, d*factor))
	c.pose.Position = r3.Add(c.pose.Target, r3.Scale(nd/d, off))
}

// Orbit rotates the camera around its target by yaw (about world up) and
// pitch, both in radians. Pitch is clamped short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	c.anim = nil
	off := c.pose.offset()
	d := r3.Norm(off)
	if d == 0 {
		return
	}
	az := math.Atan2(off.X, off.Z) + yaw
	el := math.Asin(math.Max(-1, math.Min(1, off.Y/d))) + pitch
	el = math.Max(-maxPitch, math.Min(maxPitch, el))
	off = r3.Vec{
		X: d * math.Cos(el) * math.Sin(az),
		Y: d * math.Sin(el),
		Z: d * math.Cos(el) * math.Cos(az),
	}
	c.pose.Position = r3.Add(c.pose.Target, off)
}

// basis returns forward, right and up unit vectors.
func (c *Camera) basis() (f, r, u r3.Vec) {
	f = r3.Unit(r3.Sub(c.pose.Target, c.pose.Position))
	r = r3.Cross(f, worldUp)
	if r3.Norm(r) < 1e-9 {
		r = r3.Vec{X: 1}
	}
	r = r3.Unit(r)
	u = r3.Cross(r, f)
	return f, r, u
}

// aspect is the viewport width/height ratio in square units.
func aspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / (float64(h) * CellAspect)
}

// Project maps a world position to fractional cell coordinates on a w×h
// grid. ok is false when the point is behind the camera.
func (c *Camera) Project(p r3.Vec, w, h int) (col, row, depth float64, ok bool) {
	f, r, u := c.basis()
	v := r3.Sub(p, c.pose.Position)
	z := r3.Dot(v, f)
	if z < nearPlane {
		return 0, 0, z, false
	}
	tanHalf := math.Tan(c.fov / 2)
	nx := r3.Dot(v, r) / (z * tanHalf * aspect(w, h))
	ny := r3.Dot(v, u) / (z * tanHalf)
	col = (nx + 1) / 2 * float64(w)
	row = (1 - ny) / 2 * float64(h)
	return col, row, z, true
}

// Ray returns the ray from the camera through the centre of cell (col,row).
func (c *Camera) Ray(col, row, w, h int) Ray {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	f, r, u := c.basis()
	tanHalf := math.Tan(c.fov / 2)
	nx := 2*(float64(col)+0.5)/float64(w) - 1
	ny := 1 - 2*(float64(row)+0.5)/float64(h)
	dir := r3.Add(f, r3.Add(
		r3.Scale(nx*tanHalf*aspect(w, h), r),
		r3.Scale(ny*tanHalf, u),
	))
	return NewRay(c.pose.Position, dir)
}
