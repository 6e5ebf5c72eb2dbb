package scene

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/palette"
)

// Placeholder is shown when there is nothing to draw.
const Placeholder = "No data yet. Analyze some text to grow a cloud."

// DefaultBackground is the color dimmed points blend toward.
const DefaultBackground = "#1E1E2E"

// PointCmd draws one point at its rendered (animated) position.
type PointCmd struct {
	ID       string
	Word     string
	Tone     string
	Pos      r3.Vec
	Color    string
	Dimmed   bool
	Selected bool
	Linked   bool
}

// LineCmd connects the selected point to a related one.
type LineCmd struct {
	From     r3.Vec
	To       r3.Vec
	Color    string
	Strength float64
}

// LabelCmd places text next to a world position.
type LabelCmd struct {
	At       r3.Vec
	Text     string
	Color    string
	Selected bool // names the selected point
}

// GroupCmd marks a visible tone group.
type GroupCmd struct {
	Name     string
	Color    string
	Centroid r3.Vec
	Radius   float64
	Count    int
	Active   bool
}

// Frame is everything needed to draw one frame.
type Frame struct {
	Points      []PointCmd
	Lines       []LineCmd
	Labels      []LabelCmd
	Groups      []GroupCmd
	Placeholder string
}

// FrameInput is the view state a frame is derived from.
type FrameInput struct {
	Snapshot        *cloud.Snapshot
	Selected        string // point id, empty for none
	Filter          string // canonical tone, empty for none
	Elapsed         time.Duration
	Amplitude       float64
	DimOpacity      float64
	Background      string
	Connections     int
	VisibleClusters int
}

// BuildFrame turns view state into render commands. It has no side effects.
func BuildFrame(in FrameInput) Frame {
	s := in.Snapshot
	if s.Empty() {
		return Frame{Placeholder: Placeholder}
	}
	bg := in.Background
	if bg == "" {
		bg = DefaultBackground
	}

	rendered := make([]r3.Vec, len(s.Points))
	for i, p := range s.Points {
		rendered[i] = r3.Add(p.Position, Offset(i, in.Elapsed, in.Amplitude))
	}

	var selected *cloud.Point
	if p, ok := s.Point(in.Selected); ok {
		selected = &p
	}
	linked := map[string]cloud.Link{}
	if selected != nil {
		n := in.Connections
		links := selected.Relationships
		if n >= 0 && len(links) > n {
			links = links[:n]
		}
		for _, l := range links {
			linked[l.ID] = l
		}
	}

	f := Frame{Points: make([]PointCmd, 0, len(s.Points))}
	for i, p := range s.Points {
		if !p.Placed {
			continue
		}
		cmd := PointCmd{
			ID:    p.ID,
			Word:  p.Word,
			Tone:  p.EmotionalTone,
			Pos:   rendered[i],
			Color: p.Color,
		}
		if in.Filter != "" && p.EmotionalTone != in.Filter {
			cmd.Dimmed = true
			cmd.Color = palette.Dim(p.Color, bg, in.DimOpacity)
		}
		if selected != nil && p.ID == selected.ID {
			cmd.Selected = true
		}
		_, cmd.Linked = linked[p.ID]
		f.Points = append(f.Points, cmd)
	}

	if selected != nil && selected.Placed {
		from := rendered[s.Index(selected.ID)]
		f.Labels = append(f.Labels, LabelCmd{At: from, Text: selected.Word, Color: selected.Color, Selected: true})
		for _, l := range selected.Relationships {
			if _, ok := linked[l.ID]; !ok {
				continue
			}
			i := s.Index(l.ID)
			if i < 0 || !s.Points[i].Placed {
				continue
			}
			to := rendered[i]
			f.Lines = append(f.Lines, LineCmd{From: from, To: to, Color: selected.Color, Strength: l.Strength})
			f.Labels = append(f.Labels, LabelCmd{At: to, Text: s.Points[i].Word, Color: s.Points[i].Color})
		}
	}

	for _, g := range cloud.VisibleGroups(s.Groups, in.VisibleClusters) {
		f.Groups = append(f.Groups, GroupCmd{
			Name:     g.Name,
			Color:    g.Color,
			Centroid: g.Centroid,
			Radius:   g.Radius,
			Count:    len(g.Points),
			Active:   g.Name == in.Filter,
		})
	}
	return f
}
