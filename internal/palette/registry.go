// Package palette assigns stable display colors to canonical tones.
package palette

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Fallback is used for points without a tone or with an unparsable color.
	Fallback = "#95A5A6"
	// JoyColor is fixed so the most common positive tone stays legible on dark terminals.
	JoyColor = "#F4D03F"
	// DefaultSeed keeps assignment order reproducible between runs.
	DefaultSeed int64 = 42
)

// DefaultColors is the palette tones are drawn from.
var DefaultColors = []string{
	"#E74C3C", "#3498DB", "#9B59B6", "#1ABC9C", "#E67E22", "#2ECC71",
	"#F1948A", "#5DADE2", "#AF7AC5", "#48C9B0", "#EB984E", "#58D68D",
}

// Registry caches tone -> color for the lifetime of a session. The first lookup
// of an unseen tone draws from the palette with a seeded generator; two tones
// may draw the same entry.
type Registry struct {
	mu       sync.Mutex
	seed     int64
	colors   []string
	rng      *rand.Rand
	assigned map[string]string
	order    []string
}

// New creates a registry. An empty colors slice selects DefaultColors.
func New(seed int64, colors []string) *Registry {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	r := &Registry{seed: seed, colors: append([]string(nil), colors...)}
	r.Reset()
	return r
}

// Reset forgets all assignments and reseeds the generator.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rand.New(rand.NewSource(r.seed))
	r.assigned = map[string]string{}
	r.order = nil
}

// Color returns the color for tone, assigning one on first use.
func (r *Registry) Color(tone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.assigned[tone]; ok {
		return c
	}
	c := JoyColor
	if !strings.EqualFold(tone, "Joy") {
		c = r.colors[r.rng.Intn(len(r.colors))]
	}
	r.assigned[tone] = c
	r.order = append(r.order, tone)
	return c
}

// Assigned returns the tones seen so far in assignment order.
func (r *Registry) Assigned() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Valid reports whether hex parses as a #RRGGBB color.
func Valid(hex string) bool {
	_, err := colorful.Hex(hex)
	return err == nil
}

// Dim blends hex toward background by (1 - opacity). Opacity 1 returns the
// color unchanged; invalid inputs fall back to Fallback.
func Dim(hex, background string, opacity float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(Fallback)
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	if opacity >= 1 {
		return c.Hex()
	}
	if opacity < 0 {
		opacity = 0
	}
	return c.BlendRgb(bg, 1-opacity).Clamped().Hex()
}
