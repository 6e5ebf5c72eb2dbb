package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/config"
)

const viewW, viewH = 80, 24

type recorder struct{ outcomes []string }

func (r *recorder) RecordPick(o string) { r.outcomes = append(r.outcomes, o) }

func toned(id, tone, color string, x, y, z, sentiment float64) cloud.Point {
	return cloud.Point{
		ID: id, Word: id, EmotionalTone: tone, Color: color,
		Position: r3.Vec{X: x, Y: y, Z: z}, Placed: true,
		Sentiment: sentiment, HasSentiment: true,
	}
}

func testSnapshot() *cloud.Snapshot {
	points := []cloud.Point{
		toned("joy", "Joy", "#F4D03F", 0, 0, 0, 0.9),
		toned("laugh", "Joy", "#F4D03F", 0, -6, 0, 0.85),
		toned("anxious", "Anxiety", "#E74C3C", 12, 0, 0, 0.2),
	}
	return cloud.NewSnapshot(1, analysis.Extraction{}, points, cloud.SnapshotOptions{Relationships: 5})
}

func newTestController(opts Options) (*Controller, *[]*cloud.Point, *[]string) {
	c := NewController(opts, nil)
	var clicks []*cloud.Point
	var filters []string
	c.OnPointClick = func(p *cloud.Point) { clicks = append(clicks, p) }
	c.OnFilterChange = func(tone string) { filters = append(filters, tone) }
	c.SetSnapshot(testSnapshot())
	return c, &clicks, &filters
}

func TestController_ClickSelectsAndClears(t *testing.T) {
	c, clicks, _ := newTestController(DefaultOptions())
	rec := &recorder{}
	c.SetPickRecorder(rec)

	p, ok := c.Click(viewW/2, viewH/2, viewW, viewH)
	require.True(t, ok)
	assert.Equal(t, "joy", p.ID)
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "joy", sel.ID)

	_, ok = c.Click(0, 0, viewW, viewH)
	assert.False(t, ok)
	_, ok = c.Selected()
	assert.False(t, ok)

	require.Len(t, *clicks, 2)
	assert.Equal(t, "joy", (*clicks)[0].ID)
	assert.Nil(t, (*clicks)[1])
	assert.Equal(t, []string{PickHit, PickMiss}, rec.outcomes)
}

func TestController_AnimationDoesNotAffectPicking(t *testing.T) {
	c, _, _ := newTestController(DefaultOptions())
	for i := 0; i < 50; i++ {
		c.Tick(130 * time.Millisecond)
		p, ok := c.Click(viewW/2, viewH/2, viewW, viewH)
		require.True(t, ok)
		assert.Equal(t, "joy", p.ID)
	}
	assert.Equal(t, 50*130*time.Millisecond, c.Elapsed())
}

func TestController_FilterExcludesDimmedPoints(t *testing.T) {
	c, clicks, filters := newTestController(DefaultOptions())
	rec := &recorder{}
	c.SetPickRecorder(rec)

	_, ok := c.Click(viewW/2, viewH/2, viewW, viewH)
	require.True(t, ok)

	require.True(t, c.FocusOnEmotionalGroup("anxiety theme"))
	assert.Equal(t, "Anxiety", c.Filter())
	_, ok = c.Selected()
	assert.False(t, ok, "selection outside the focused group is dropped")

	_, ok = c.Click(viewW/2, viewH/2, viewW, viewH)
	assert.False(t, ok)
	assert.Equal(t, PickBlocked, rec.outcomes[len(rec.outcomes)-1])
	assert.False(t, c.Select("joy"))
	assert.True(t, c.Select("anxious"))

	c.ResetEmotionalGroupFilter()
	assert.Empty(t, c.Filter())
	assert.Equal(t, []string{"Anxiety", ""}, *filters)
	assert.NotEmpty(t, *clicks)
}

func TestController_FilteredSelectable(t *testing.T) {
	opts := DefaultOptions()
	opts.FilteredSelectable = true
	c, _, _ := newTestController(opts)

	require.True(t, c.FocusOnEmotionalGroup("Anxiety"))
	p, ok := c.Click(viewW/2, viewH/2, viewW, viewH)
	require.True(t, ok)
	assert.Equal(t, "joy", p.ID)
}

func TestController_FocusMovesCamera(t *testing.T) {
	c, _, _ := newTestController(DefaultOptions())
	assert.False(t, c.FocusOnEmotionalGroup("Love"), "no such group")
	assert.Empty(t, c.Filter())

	require.True(t, c.FocusOnEmotionalGroup("Anxiety"))
	c.Tick(time.Second)
	assert.Equal(t, r3.Vec{X: 12}, c.Camera().Pose().Target)

	c.ResetView()
	c.Tick(time.Second)
	assert.Equal(t, HomePose(), c.Camera().Pose())
}

func TestController_Zoom(t *testing.T) {
	c, _, _ := newTestController(DefaultOptions())
	c.ZoomIn()
	assert.InDelta(t, 24, c.Camera().Pose().Distance(), 1e-9)
	c.ZoomOut()
	c.ZoomOut()
	assert.InDelta(t, 34.56, c.Camera().Pose().Distance(), 1e-9)
}

func TestController_SetSnapshotClearsState(t *testing.T) {
	c, clicks, filters := newTestController(DefaultOptions())
	_, ok := c.Click(viewW/2, viewH/2, viewW, viewH)
	require.True(t, ok)
	require.True(t, c.FocusOnEmotionalGroup("Joy"))

	c.SetSnapshot(testSnapshot())
	_, ok = c.Selected()
	assert.False(t, ok)
	assert.Empty(t, c.Filter())
	assert.Nil(t, (*clicks)[len(*clicks)-1])
	assert.Equal(t, "", (*filters)[len(*filters)-1])

	c.SetSnapshot(nil)
	_, ok = c.Click(viewW/2, viewH/2, viewW, viewH)
	assert.False(t, ok)
	assert.Equal(t, Placeholder, c.Frame().Placeholder)
}

func TestController_VisibleClusters(t *testing.T) {
	c, _, filters := newTestController(DefaultOptions())
	require.True(t, c.FocusOnEmotionalGroup("Anxiety"))

	assert.Equal(t, MinVisibleClusters, c.SetVisibleClusters(0))
	groups := c.VisibleGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, "Joy", groups[0].Name, "the larger group survives")
	assert.Empty(t, c.Filter(), "filter on a hidden group is reset")
	assert.Equal(t, "", (*filters)[len(*filters)-1])
	assert.False(t, c.FocusOnEmotionalGroup("Anxiety"))

	assert.Equal(t, MaxVisibleClusters, c.SetVisibleClusters(99))
	assert.Len(t, c.VisibleGroups(), 2)
}

func TestController_ConnectedTruncated(t *testing.T) {
	var points []cloud.Point
	for i, id := range []string{"a", "b", "c", "d", "e", "f"} {
		points = append(points, toned(id, "Calm", "#1ABC9C", float64(i), 0, 0, 0.5))
	}
	s := cloud.NewSnapshot(1, analysis.Extraction{}, points, cloud.SnapshotOptions{Relationships: 5})

	c := NewController(DefaultOptions(), nil)
	c.SetSnapshot(s)
	require.True(t, c.Select("a"))
	conn := c.Connected()
	require.Len(t, conn, 3)
	assert.Equal(t, "b", conn[0].ID)

	f := c.Frame()
	assert.Len(t, f.Lines, 3)
	assert.Len(t, f.Labels, 4)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Scene
	cfg.FilteredSelectable = true
	cfg.Connections = 2
	o := OptionsFromConfig(cfg)
	assert.Equal(t, 2, o.Connections)
	assert.True(t, o.FilteredSelectable)
	assert.Equal(t, 800*time.Millisecond, o.ResetDuration)
	assert.Equal(t, 0.8, o.ZoomInFactor)
}
