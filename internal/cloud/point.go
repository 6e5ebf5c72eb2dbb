// Package cloud turns extracted terms into colored, positioned points and
// derives tone groups and pairwise relationships from them.
package cloud

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/palette"
)

var pointNamespace = uuid.MustParse("6f1c2e0a-7d0b-4d55-9a52-3c2f1b9e8a41")

// Link is a precomputed relationship to another point.
type Link struct {
	ID       string  `json:"id"`
	Strength float64 `json:"strength"`
}

// Point is one word in the cloud. Optional inputs are resolved once here:
// Placed is false when no coordinate was supplied, HasSentiment is false when
// the sentiment was missing or not a number.
type Point struct {
	ID            string            `json:"id"`
	Word          string            `json:"word"`
	Category      analysis.Category `json:"category"`
	EmotionalTone string            `json:"emotional_tone"`
	Sentiment     float64           `json:"sentiment"`
	HasSentiment  bool              `json:"has_sentiment"`
	Frequency     int               `json:"frequency,omitempty"`
	Position      r3.Vec            `json:"position"`
	Placed        bool              `json:"placed"`
	Color         string            `json:"color"`
	Keywords      []string          `json:"keywords,omitempty"`
	Relationships []Link            `json:"relationships,omitempty"`
}

// Coords returns the position as an [x,y,z] triple.
func (p Point) Coords() [3]float64 {
	return [3]float64{p.Position.X, p.Position.Y, p.Position.Z}
}

// BuildPoints assembles points from terms and externally supplied coordinates
// (coords[i] belongs to terms[i]; missing entries leave the point unplaced).
// Tones are normalized and colored through reg; a term without a tone gets
// the fallback gray.
func BuildPoints(terms []analysis.Term, coords [][3]float64, reg *palette.Registry) []Point {
	points := make([]Point, 0, len(terms))
	seen := make(map[string]int, len(terms))

	for i, t := range terms {
		word := strings.TrimSpace(t.Word)
		p := Point{
			Word:          word,
			Category:      t.Category,
			EmotionalTone: analysis.NormalizeTone(t.Tone),
			Frequency:     t.Count,
			Keywords:      append([]string(nil), t.Keywords...),
			Color:         palette.Fallback,
		}

		if !math.IsNaN(t.Sentiment) && !math.IsInf(t.Sentiment, 0) {
			p.Sentiment = math.Max(0, math.Min(1, t.Sentiment))
			p.HasSentiment = true
		}

		if i < len(coords) {
			c := coords[i]
			if finite(c[0]) && finite(c[1]) && finite(c[2]) {
				p.Position = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
				p.Placed = true
			}
		}

		if strings.TrimSpace(t.Tone) != "" && reg != nil {
			if c := reg.Color(p.EmotionalTone); palette.Valid(c) {
				p.Color = c
			}
		}

		p.ID = pointID(word, t.Category, seen)
		points = append(points, p)
	}
	return points
}

func pointID(word string, cat analysis.Category, seen map[string]int) string {
	key := string(cat) + "/" + word
	n := seen[key]
	seen[key] = n + 1
	if n > 0 {
		key = fmt.Sprintf("%s#%d", key, n)
	}
	return uuid.NewSHA1(pointNamespace, []byte(key)).String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
