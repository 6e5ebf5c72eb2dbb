package scene

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/logging"
)

// Pick outcomes reported to a PickRecorder.
const (
	PickHit     = "hit"
	PickMiss    = "miss"
	PickBlocked = "filtered"
)

// PickRecorder observes click outcomes.
type PickRecorder interface {
	RecordPick(outcome string)
}

// Options configures a Controller.
type Options struct {
	PickThreshold      float64
	ZoomInFactor       float64
	ZoomOutFactor      float64
	ResetDuration      time.Duration
	VisibleClusters    int
	Connections        int
	DimOpacity         float64
	FilteredSelectable bool
	Amplitude          float64
	Background         string
}

func DefaultOptions() Options {
	return Options{
		PickThreshold:   DefaultPickThreshold,
		ZoomInFactor:    0.8,
		ZoomOutFactor:   1.2,
		ResetDuration:   800 * time.Millisecond,
		VisibleClusters: MaxVisibleClusters,
		Connections:     3,
		DimOpacity:      0.25,
		Amplitude:       DefaultAmplitude,
		Background:      DefaultBackground,
	}
}

// OptionsFromConfig maps the scene config section onto Options.
func OptionsFromConfig(c config.SceneConfig) Options {
	o := DefaultOptions()
	if c.PickThreshold > 0 {
		o.PickThreshold = c.PickThreshold
	}
	if c.ZoomInFactor > 0 {
		o.ZoomInFactor = c.ZoomInFactor
	}
	if c.ZoomOutFactor > 0 {
		o.ZoomOutFactor = c.ZoomOutFactor
	}
	if c.ResetDuration > 0 {
		o.ResetDuration = c.ResetDuration
	}
	if c.VisibleClusters > 0 {
		o.VisibleClusters = c.VisibleClusters
	}
	if c.Connections > 0 {
		o.Connections = c.Connections
	}
	if c.DimOpacity > 0 {
		o.DimOpacity = c.DimOpacity
	}
	o.FilteredSelectable = c.FilteredSelectable
	return o
}

// Visible cluster count bounds.
const (
	MinVisibleClusters = 1
	MaxVisibleClusters = 12
)

// Controller owns view state for one session: the snapshot on screen, the
// selection, the tone filter and the camera. It is not safe for concurrent
// use; the UI event loop is its only caller.
type Controller struct {
	opts    Options
	cam     *Camera
	snap    *cloud.Snapshot
	sel     string
	filter  string
	visible int
	elapsed time.Duration

	// OnPointClick fires when the selection changes; nil means cleared.
	OnPointClick func(p *cloud.Point)
	// OnFilterChange fires when the tone filter changes; "" means cleared.
	OnFilterChange func(tone string)

	picks  PickRecorder
	logger logging.Logger
}

func NewController(opts Options, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.PickThreshold <= 0 {
		opts.PickThreshold = DefaultPickThreshold
	}
	return &Controller{
		opts:    opts,
		cam:     NewCamera(),
		visible: clampVisible(opts.VisibleClusters),
		logger:  logger.Named("scene"),
	}
}

// SetPickRecorder attaches a click observer.
func (c *Controller) SetPickRecorder(r PickRecorder) { c.picks = r }

func (c *Controller) Camera() *Camera           { return c.cam }
func (c *Controller) Snapshot() *cloud.Snapshot { return c.snap }
func (c *Controller) Filter() string            { return c.filter }
func (c *Controller) VisibleClusterCount() int  { return c.visible }
func (c *Controller) Elapsed() time.Duration    { return c.elapsed }

// SetSnapshot replaces the cloud. Selection and filter are cleared.
func (c *Controller) SetSnapshot(s *cloud.Snapshot) {
	c.snap = s
	c.clearSelection()
	c.clearFilter()
}

// Selected returns the selected point.
func (c *Controller) Selected() (cloud.Point, bool) {
	if c.sel == "" {
		return cloud.Point{}, false
	}
	return c.snap.Point(c.sel)
}

// Connected returns the selected point's strongest partners, at most
// Options.Connections of them.
func (c *Controller) Connected() []cloud.Point {
	if c.sel == "" {
		return nil
	}
	return c.snap.Connected(c.sel, c.opts.Connections)
}

// selectable reports whether point i may be hit-tested under the current filter.
func (c *Controller) selectable(i int) bool {
	if c.filter == "" || c.opts.FilteredSelectable {
		return true
	}
	return c.snap.Points[i].EmotionalTone == c.filter
}

// Click hit-tests the cell (col,row) of a w×h viewport against static point
// positions and selects the nearest point within the pick threshold. A miss
// clears the selection.
func (c *Controller) Click(col, row, w, h int) (cloud.Point, bool) {
	if c.snap.Empty() {
		return cloud.Point{}, false
	}
	ray := c.cam.Ray(col, row, w, h)
	i := Pick(ray, c.snap.Points, c.opts.PickThreshold, c.selectable)
	if i < 0 {
		outcome := PickMiss
		if c.filter != "" && !c.opts.FilteredSelectable && Pick(ray, c.snap.Points, c.opts.PickThreshold, nil) >= 0 {
			outcome = PickBlocked
		}
		c.record(outcome)
		c.clearSelection()
		return cloud.Point{}, false
	}
	c.record(PickHit)
	p := c.snap.Points[i]
	c.setSelection(p.ID)
	return p, true
}

// Select selects a point by id, subject to the same filter rule as Click.
func (c *Controller) Select(id string) bool {
	i := c.snap.Index(id)
	if i < 0 || !c.selectable(i) {
		return false
	}
	c.setSelection(id)
	return true
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() { c.clearSelection() }

func (c *Controller) setSelection(id string) {
	if c.sel == id {
		return
	}
	c.sel = id
	if c.OnPointClick != nil {
		p, _ := c.snap.Point(id)
		c.OnPointClick(&p)
	}
	c.logger.Debug("point selected", logging.String("id", id))
}

func (c *Controller) clearSelection() {
	if c.sel == "" {
		return
	}
	c.sel = ""
	if c.OnPointClick != nil {
		c.OnPointClick(nil)
	}
}

func (c *Controller) record(outcome string) {
	if c.picks != nil {
		c.picks.RecordPick(outcome)
	}
}

// ZoomIn moves the camera closer by the configured factor.
func (c *Controller) ZoomIn() { c.cam.Zoom(c.opts.ZoomInFactor) }

// ZoomOut moves the camera away by the configured factor.
func (c *Controller) ZoomOut() { c.cam.Zoom(c.opts.ZoomOutFactor) }

// ResetView eases the camera back to its home pose.
func (c *Controller) ResetView() { c.cam.Reset(c.opts.ResetDuration) }

// Orbit turns the camera around its target.
func (c *Controller) Orbit(yaw, pitch float64) { c.cam.Orbit(yaw, pitch) }

// VisibleGroups returns the groups considered for legend and filtering.
func (c *Controller) VisibleGroups() []cloud.Group {
	if c.snap == nil {
		return nil
	}
	return cloud.VisibleGroups(c.snap.Groups, c.visible)
}

// SetVisibleClusters changes how many groups are considered and returns the
// clamped value. A filter on a group that drops out is reset.
func (c *Controller) SetVisibleClusters(n int) int {
	c.visible = clampVisible(n)
	if c.filter != "" && !c.groupVisible(c.filter) {
		c.clearFilter()
	}
	return c.visible
}

func (c *Controller) groupVisible(tone string) bool {
	for _, g := range c.VisibleGroups() {
		if g.Name == tone {
			return true
		}
	}
	return false
}

func clampVisible(n int) int {
	if n < MinVisibleClusters {
		return MinVisibleClusters
	}
	if n > MaxVisibleClusters {
		return MaxVisibleClusters
	}
	return n
}

// FocusOnEmotionalGroup filters to tone and eases the camera to look at the
// group's centroid from the current direction. It reports false when no
// visible group carries the tone.
func (c *Controller) FocusOnEmotionalGroup(tone string) bool {
	tone = analysis.NormalizeTone(tone)
	var group *cloud.Group
	for _, g := range c.VisibleGroups() {
		if g.Name == tone {
			group = &g
			break
		}
	}
	if group == nil {
		return false
	}

	pose := c.cam.Pose()
	off := pose.offset()
	if d := r3.Norm(off); d < group.Radius*2 && d > 0 {
		off = r3.Scale(group.Radius*2/d, off)
	}
	c.cam.MoveTo(Pose{Position: r3.Add(group.Centroid, off), Target: group.Centroid}, c.opts.ResetDuration)

	if c.sel != "" && !c.opts.FilteredSelectable && !group.Contains(c.sel) {
		c.clearSelection()
	}
	if c.filter != tone {
		c.filter = tone
		if c.OnFilterChange != nil {
			c.OnFilterChange(tone)
		}
	}
	return true
}

// ResetEmotionalGroupFilter clears the tone filter.
func (c *Controller) ResetEmotionalGroupFilter() { c.clearFilter() }

func (c *Controller) clearFilter() {
	if c.filter == "" {
		return
	}
	c.filter = ""
	if c.OnFilterChange != nil {
		c.OnFilterChange("")
	}
}

// Tick advances animation time and any camera transition.
func (c *Controller) Tick(dt time.Duration) {
	if dt < 0 {
		return
	}
	c.elapsed += dt
	c.cam.Advance(dt)
}

// Frame evaluates the current view state.
func (c *Controller) Frame() Frame {
	return BuildFrame(FrameInput{
		Snapshot:        c.snap,
		Selected:        c.sel,
		Filter:          c.filter,
		Elapsed:         c.elapsed,
		Amplitude:       c.opts.Amplitude,
		DimOpacity:      c.opts.DimOpacity,
		Background:      c.opts.Background,
		Connections:     c.opts.Connections,
		VisibleClusters: c.visible,
	})
}
