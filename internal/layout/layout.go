// Package layout places words in 3-D space. The engine treats placement as an
// external collaborator behind Provider; ToneSphere is the built-in default.
package layout

import (
	"context"
	"hash/fnv"
	"math"
)

// Item is one word to place.
type Item struct {
	Word      string
	Tone      string
	Sentiment float64
}

// Provider returns one [x,y,z] per item, in order.
type Provider interface {
	Layout(ctx context.Context, items []Item) ([][3]float64, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, items []Item) ([][3]float64, error)

func (f ProviderFunc) Layout(ctx context.Context, items []Item) ([][3]float64, error) {
	return f(ctx, items)
}

// ToneSphere clusters words of a tone around an anchor on a sphere of Radius.
// Placement is a pure function of (word, tone, sentiment).
type ToneSphere struct {
	Radius float64
	Jitter float64
}

func NewToneSphere(radius, jitter float64) ToneSphere {
	if radius <= 0 {
		radius = 10
	}
	if jitter < 0 {
		jitter = 0
	}
	return ToneSphere{Radius: radius, Jitter: jitter}
}

func (s ToneSphere) Layout(ctx context.Context, items []Item) ([][3]float64, error) {
	out := make([][3]float64, len(items))
	for i, it := range items {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = s.place(it)
	}
	return out, nil
}

func (s ToneSphere) place(it Item) [3]float64 {
	// tone anchor: golden-angle point on the unit sphere picked by hash
	h := hash64(it.Tone)
	k := float64(h%97) + 0.5
	phi := math.Acos(1 - 2*k/97)
	theta := math.Pi * (1 + math.Sqrt(5)) * k

	// sentiment pulls positive words outward, negative inward
	r := s.Radius * (0.75 + 0.5*it.Sentiment)
	if it.Tone == "" || it.Tone == "Neutral" {
		r = s.Radius * 0.2
	}
	anchor := [3]float64{
		r * math.Sin(phi) * math.Cos(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Sin(theta),
	}

	w := hash64(it.Tone + "/" + it.Word)
	for axis := 0; axis < 3; axis++ {
		u := float64((w>>(axis*16))&0xffff)/0xffff - 0.5
		anchor[axis] += 2 * u * s.Jitter
	}
	return anchor
}

func hash64(s string) uint64 {
	f := fnv.New64a()
	_, _ = f.Write([]byte(s))
	return f.Sum64()
}
