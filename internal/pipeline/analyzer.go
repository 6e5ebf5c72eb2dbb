// Package pipeline runs the full analysis: extraction, layout, coloring,
// grouping and plan matching, guarded against overlapping runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/layout"
	"github.com/ramanasai/mindcloud/internal/logging"
	"github.com/ramanasai/mindcloud/internal/metrics"
	"github.com/ramanasai/mindcloud/internal/palette"
	"github.com/ramanasai/mindcloud/internal/plans"
)

// ErrStale is returned when a newer run started before this one finished.
var ErrStale = errors.New("analysis superseded by a newer run")

// ErrWordNotFound is returned by Compare for a word absent from the cloud.
var ErrWordNotFound = errors.New("word not in cloud")

// Options tunes the pipeline.
type Options struct {
	Extract       analysis.Options
	Relationships int
	SpatialNorm   float64
}

// OptionsFromConfig maps config sections onto Options.
func OptionsFromConfig(c config.Config) Options {
	return Options{
		Extract: analysis.Options{
			MaxActions:   c.Analysis.MaxActions,
			MaxSubjects:  c.Analysis.MaxSubjects,
			ContextBoost: c.Analysis.ContextBoost,
			MinRepeat:    c.Analysis.MinRepeat,
		},
		Relationships: c.Analysis.Relationships,
		SpatialNorm:   c.Scene.SpatialNorm,
	}
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

func WithLayout(p layout.Provider) Option     { return func(a *Analyzer) { a.layout = p } }
func WithPalette(r *palette.Registry) Option  { return func(a *Analyzer) { a.palette = r } }
func WithMatcher(m *plans.Matcher) Option     { return func(a *Analyzer) { a.matcher = m } }
func WithLexicon(lx *analysis.Lexicon) Option { return func(a *Analyzer) { a.lexicon = lx } }
func WithMetrics(m *metrics.Metrics) Option   { return func(a *Analyzer) { a.metrics = m } }
func WithLogger(l logging.Logger) Option      { return func(a *Analyzer) { a.logger = l } }

// Analyzer turns text into a published cloud snapshot. Each run is stamped
// with a generation; only the newest run may publish.
type Analyzer struct {
	opts      Options
	lexicon   *analysis.Lexicon
	extractor *analysis.Extractor
	layout    layout.Provider
	palette   *palette.Registry
	matcher   *plans.Matcher
	metrics   *metrics.Metrics
	logger    logging.Logger

	store cloud.Store
	gen   atomic.Uint64
}

func NewAnalyzer(opts Options, options ...Option) *Analyzer {
	a := &Analyzer{opts: opts}
	for _, o := range options {
		o(a)
	}
	if a.layout == nil {
		a.layout = layout.NewToneSphere(0, 0)
	}
	if a.palette == nil {
		a.palette = palette.New(palette.DefaultSeed, nil)
	}
	if a.matcher == nil {
		a.matcher = plans.NewMatcher(nil)
	}
	if a.logger == nil {
		a.logger = logging.NewNopLogger()
	}
	a.logger = a.logger.Named("pipeline")
	a.extractor = analysis.NewExtractor(a.lexicon, opts.Extract)
	return a
}

// Palette returns the session's color registry.
func (a *Analyzer) Palette() *palette.Registry { return a.palette }

// Current returns the most recently published snapshot, or nil.
func (a *Analyzer) Current() *cloud.Snapshot { return a.store.Load() }

// Begin reserves the next generation. Any run holding an older generation
// becomes stale from this point.
func (a *Analyzer) Begin() uint64 { return a.gen.Add(1) }

// Latest is the most recently reserved generation.
func (a *Analyzer) Latest() uint64 { return a.gen.Load() }

// Analyze reserves a generation and runs it.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	return a.Run(ctx, a.Begin(), text)
}

// Run analyses text under a generation obtained from Begin. It returns
// ErrStale (with Status stale) when a newer generation was reserved before
// the result could be published, and the context error when ctx ends first.
func (a *Analyzer) Run(ctx context.Context, gen uint64, text string) (Result, error) {
	start := time.Now()
	log := a.logger.With(logging.Uint64("generation", gen))

	res, err := a.run(ctx, gen, text, log)
	res.Generation = gen
	res.Duration = time.Since(start)

	status := string(res.Status)
	switch {
	case errors.Is(err, ErrStale):
		log.Debug("analysis dropped as stale")
	case err != nil:
		status = "error"
		log.Warn("analysis failed", logging.Err(err))
	default:
		log.Info("analysis complete",
			logging.String("status", status),
			logging.Int("points", len(res.Points())),
			logging.Int("plans", len(res.Plans)),
			logging.Duration("took", res.Duration))
		for _, p := range res.Plans {
			a.metrics.RecordPlan(p.Category)
		}
	}
	a.metrics.RecordAnalysis(status, res.Duration, len(res.Points()))
	return res, err
}

func (a *Analyzer) stale(gen uint64) bool { return a.gen.Load() != gen }

func (a *Analyzer) run(ctx context.Context, gen uint64, text string, log logging.Logger) (Result, error) {
	staleResult := Result{Status: StatusStale}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analyze: %w", err)
	}

	x := a.extractor.Extract(text)
	if a.stale(gen) {
		return staleResult, ErrStale
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analyze: %w", err)
	}

	terms := x.Terms()
	items := make([]layout.Item, len(terms))
	for i, t := range terms {
		items[i] = layout.Item{Word: t.Word, Tone: analysis.NormalizeTone(t.Tone), Sentiment: t.Sentiment}
	}
	var coords [][3]float64
	if len(items) > 0 {
		c, err := a.layout.Layout(ctx, items)
		switch {
		case ctx.Err() != nil:
			return Result{}, fmt.Errorf("analyze: layout: %w", ctx.Err())
		case err != nil:
			log.Warn("layout provider failed; points left unplaced", logging.Err(err))
		case len(c) != len(items):
			log.Warn("layout provider returned wrong count; points left unplaced",
				logging.Int("want", len(items)), logging.Int("got", len(c)))
		default:
			coords = c
		}
	}
	if a.stale(gen) {
		return staleResult, ErrStale
	}

	points := cloud.BuildPoints(terms, coords, a.palette)
	snap := cloud.NewSnapshot(gen, x, points, cloud.SnapshotOptions{
		Relationships: a.opts.Relationships,
		SpatialNorm:   a.opts.SpatialNorm,
	})

	if a.stale(gen) || !a.store.Publish(snap) {
		return staleResult, ErrStale
	}

	res := Result{
		Status:     StatusOK,
		Extraction: x,
		Snapshot:   snap,
		Plans:      a.matcher.Match(text, x.ToneNames()),
	}
	if x.Empty() {
		res.Status = StatusEmpty
	}
	return res, nil
}

// Compare scores two words of the current cloud.
func (a *Analyzer) Compare(wordA, wordB string) (cloud.Relationship, cloud.Point, cloud.Point, error) {
	snap := a.Current()
	pa, ok := snap.FindWord(strings.ToLower(strings.TrimSpace(wordA)))
	if !ok {
		return cloud.Relationship{}, cloud.Point{}, cloud.Point{}, fmt.Errorf("compare %q: %w", wordA, ErrWordNotFound)
	}
	pb, ok := snap.FindWord(strings.ToLower(strings.TrimSpace(wordB)))
	if !ok {
		return cloud.Relationship{}, cloud.Point{}, cloud.Point{}, fmt.Errorf("compare %q: %w", wordB, ErrWordNotFound)
	}
	return snap.Compare(pa, pb), pa, pb, nil
}
