package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame_Empty(t *testing.T) {
	f := BuildFrame(FrameInput{})
	assert.Equal(t, Placeholder, f.Placeholder)
	assert.Empty(t, f.Points)
	assert.Empty(t, f.Lines)
}

func TestBuildFrame_NoSelectionNoLines(t *testing.T) {
	f := BuildFrame(FrameInput{Snapshot: testSnapshot(), Connections: 3, VisibleClusters: 12})
	assert.Empty(t, f.Placeholder)
	assert.Len(t, f.Points, 3)
	assert.Empty(t, f.Lines)
	assert.Empty(t, f.Labels)
	require.Len(t, f.Groups, 2)
	assert.Equal(t, "Joy", f.Groups[0].Name)
	assert.Equal(t, 2, f.Groups[0].Count)
}

func TestBuildFrame_SelectionAndFilter(t *testing.T) {
	s := testSnapshot()
	in := FrameInput{
		Snapshot:        s,
		Selected:        "joy",
		Filter:          "Joy",
		DimOpacity:      0.25,
		Connections:     3,
		VisibleClusters: 12,
	}
	f := BuildFrame(in)

	byID := map[string]PointCmd{}
	for _, p := range f.Points {
		byID[p.ID] = p
	}
	assert.True(t, byID["joy"].Selected)
	assert.False(t, byID["joy"].Dimmed)
	assert.True(t, byID["anxious"].Dimmed)
	assert.NotEqual(t, "#E74C3C", byID["anxious"].Color)
	assert.True(t, byID["laugh"].Linked)

	assert.Len(t, f.Lines, 2)
	for _, l := range f.Lines {
		assert.Equal(t, byID["joy"].Pos, l.From)
	}
	assert.True(t, f.Groups[0].Active)

	require.NotEmpty(t, f.Labels)
	assert.True(t, f.Labels[0].Selected)
	assert.Equal(t, "joy", f.Labels[0].Text)
	for _, l := range f.Labels[1:] {
		assert.False(t, l.Selected)
	}

	assert.Equal(t, f, BuildFrame(in), "pure")
}

func TestBuildFrame_AnimationMovesRenderedPositionsOnly(t *testing.T) {
	s := testSnapshot()
	a := BuildFrame(FrameInput{Snapshot: s, Amplitude: DefaultAmplitude})
	b := BuildFrame(FrameInput{Snapshot: s, Amplitude: DefaultAmplitude, Elapsed: 2_000_000_000})
	assert.NotEqual(t, a.Points[0].Pos, b.Points[0].Pos)
	p, _ := s.Point("joy")
	assert.Equal(t, 0.0, p.Position.X)
}
