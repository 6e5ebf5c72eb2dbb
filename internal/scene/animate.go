package scene

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultAmplitude is the breathing offset in world units.
const DefaultAmplitude = 0.15

// Offset is the cosmetic displacement of the i-th point at time t. Each axis
// runs its own sinusoid; frequencies vary with i mod 3, 5 and 7 so
// neighbours drift out of phase.
func Offset(i int, t time.Duration, amplitude float64) r3.Vec {
	if amplitude == 0 {
		return r3.Vec{}
	}
	s := t.Seconds()
	phase := float64(i) * 0.7
	return r3.Vec{
		X: amplitude * math.Sin((0.6+0.15*float64(i%3))*s+phase),
		Y: amplitude * math.Sin((0.5+0.12*float64(i%5))*s+phase*1.3),
		Z: amplitude * math.Sin((0.4+0.10*float64(i%7))*s+phase*1.7),
	}
}
