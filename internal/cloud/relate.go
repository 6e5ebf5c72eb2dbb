package cloud

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSpatialNorm is the distance at which spatial similarity reaches 0.
const DefaultSpatialNorm = 20.0

// Relationship compares two points.
type Relationship struct {
	SpatialSimilarity   float64  `json:"spatial_similarity"`
	SentimentSimilarity float64  `json:"sentiment_similarity"`
	SameEmotionalGroup  bool     `json:"same_emotional_group"`
	SharedKeywords      []string `json:"shared_keywords"`
	Overall             float64  `json:"overall"`
	Label               string   `json:"label"`
}

// Relate scores a against b. The result does not depend on argument order.
// A dimension that cannot be computed (unplaced point, missing sentiment)
// contributes 0.
func Relate(a, b Point, spatialNorm float64) Relationship {
	if spatialNorm <= 0 {
		spatialNorm = DefaultSpatialNorm
	}

	var rel Relationship
	if a.Placed && b.Placed {
		d := r3.Norm(r3.Sub(a.Position, b.Position))
		rel.SpatialSimilarity = math.Max(0, 1-d/spatialNorm)
	}
	if a.HasSentiment && b.HasSentiment {
		rel.SentimentSimilarity = 1 - math.Abs(a.Sentiment-b.Sentiment)
	}
	rel.SameEmotionalGroup = a.EmotionalTone == b.EmotionalTone
	rel.SharedKeywords = intersect(a.Keywords, b.Keywords)

	group := 0.0
	if rel.SameEmotionalGroup {
		group = 1
	}
	rel.Overall = 0.4*rel.SpatialSimilarity + 0.4*rel.SentimentSimilarity + 0.2*group
	rel.Label = StrengthLabel(rel.Overall)
	return rel
}

// StrengthLabel names an overall similarity score.
func StrengthLabel(v float64) string {
	switch {
	case v >= 0.8:
		return "Strongly Related"
	case v >= 0.6:
		return "Closely Related"
	case v >= 0.4:
		return "Moderately Related"
	case v >= 0.2:
		return "Loosely Related"
	default:
		return "Barely Related"
	}
}

func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, w := range b {
		in[w] = struct{}{}
	}
	out := []string{}
	seen := map[string]struct{}{}
	for _, w := range a {
		if _, ok := in[w]; !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// linkPoints fills each point's Relationships with its top-n strongest
// partners, strongest first. Self links are never produced.
func linkPoints(points []Point, n int, spatialNorm float64) {
	if n <= 0 {
		return
	}
	for i := range points {
		links := make([]Link, 0, len(points))
		for j := range points {
			if i == j || points[i].ID == points[j].ID {
				continue
			}
			s := Relate(points[i], points[j], spatialNorm).Overall
			if s <= 0 {
				continue
			}
			links = append(links, Link{ID: points[j].ID, Strength: s})
		}
		sort.SliceStable(links, func(a, b int) bool { return links[a].Strength > links[b].Strength })
		if len(links) > n {
			links = links[:n]
		}
		points[i].Relationships = links
	}
}
