package cloud

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/palette"
)

// RadiusPadding scales the farthest member distance so boundary points sit inside the group.
const RadiusPadding = 1.5

// Group is the set of points sharing a canonical tone. Unplaced points are
// members (counted, filtered, selectable) but have no position, so Centroid
// and Radius describe the placed members only.
type Group struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Points   []Point `json:"points"`
	Centroid r3.Vec  `json:"centroid"`
	Radius   float64 `json:"radius"`
}

// Contains reports whether the point id is a member.
func (g Group) Contains(id string) bool {
	for _, p := range g.Points {
		if p.ID == id {
			return true
		}
	}
	return false
}

// GroupByTone partitions points by EmotionalTone. Groups are ordered by member
// count descending, then name; the same order VisibleGroups truncates. A
// group takes the palette color of its tone; it is the fallback gray only
// when no member was colored by the palette.
func GroupByTone(points []Point) []Group {
	index := map[string]int{}
	var groups []Group
	for _, p := range points {
		i, ok := index[p.EmotionalTone]
		if !ok {
			i = len(groups)
			index[p.EmotionalTone] = i
			groups = append(groups, Group{Name: p.EmotionalTone, Color: palette.Fallback})
		}
		if p.Color != palette.Fallback && palette.Valid(p.Color) {
			groups[i].Color = p.Color
		}
		groups[i].Points = append(groups[i].Points, p)
	}
	for i := range groups {
		groups[i].Centroid, groups[i].Radius = extent(groups[i].Points)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Points) != len(groups[j].Points) {
			return len(groups[i].Points) > len(groups[j].Points)
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// extent computes the mean position of placed members and the padded radius.
func extent(points []Point) (r3.Vec, float64) {
	var sum r3.Vec
	n := 0
	for _, p := range points {
		if p.Placed {
			sum = r3.Add(sum, p.Position)
			n++
		}
	}
	if n == 0 {
		return r3.Vec{}, 0
	}
	c := r3.Scale(1/float64(n), sum)

	var maxD float64
	for _, p := range points {
		if !p.Placed {
			continue
		}
		if d := r3.Norm(r3.Sub(p.Position, c)); d > maxD {
			maxD = d
		}
	}
	return c, RadiusPadding * maxD
}

// VisibleGroups keeps the n largest groups (ties by name); smaller groups are
// dropped first. n <= 0 keeps every group.
func VisibleGroups(groups []Group, n int) []Group {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}
