package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/cloud"
)

// DefaultPickThreshold is the largest ray distance that still selects a point.
const DefaultPickThreshold = 2.0

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// NewRay normalizes dir. A zero direction points down -Z.
func NewRay(origin, dir r3.Vec) Ray {
	if r3.Norm(dir) == 0 {
		dir = r3.Vec{Z: -1}
	}
	return Ray{Origin: origin, Dir: r3.Unit(dir)}
}

// Distance is the shortest distance from p to the ray. Points behind the
// origin measure to the origin itself.
func (r Ray) Distance(p r3.Vec) float64 {
	v := r3.Sub(p, r.Origin)
	t := r3.Dot(v, r.Dir)
	if t <= 0 {
		return r3.Norm(v)
	}
	return r3.Norm(r3.Sub(v, r3.Scale(t, r.Dir)))
}

// Pick returns the index of the point nearest to ray, measured at its static
// position, when that distance is below threshold. Unplaced points and points
// rejected by eligible are skipped. It returns -1 when nothing qualifies.
func Pick(ray Ray, points []cloud.Point, threshold float64, eligible func(i int) bool) int {
	best, bestD := -1, math.Inf(1)
	for i, p := range points {
		if !p.Placed {
			continue
		}
		if eligible != nil && !eligible(i) {
			continue
		}
		d := ray.Distance(p.Position)
		if d < threshold && d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
