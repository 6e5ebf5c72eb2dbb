package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/layout"
	"github.com/ramanasai/mindcloud/internal/metrics"
	"github.com/ramanasai/mindcloud/internal/palette"
)

const journalLine = "I feel so anxious and my heart is racing, but I also felt joy seeing my friend"

func newAnalyzer(options ...Option) *Analyzer {
	return NewAnalyzer(OptionsFromConfig(config.Default()), options...)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestAnalyze_EndToEnd(t *testing.T) {
	m := metrics.New()
	a := newAnalyzer(WithMetrics(m))

	res, err := a.Analyze(context.Background(), journalLine)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, uint64(1), res.Generation)

	tones := res.Extraction.ToneNames()
	assert.Contains(t, tones, analysis.ToneAnxiety)
	assert.Contains(t, tones, analysis.ToneJoy)

	require.NotEmpty(t, res.Plans)
	assert.LessOrEqual(t, len(res.Plans), 3)
	assert.Equal(t, "Anxiety", res.Plans[0].Category)

	require.Len(t, res.Points(), 8)
	ids := map[string]bool{}
	for _, p := range res.Points() {
		assert.False(t, ids[p.ID])
		ids[p.ID] = true
		assert.True(t, p.Placed)
		assert.True(t, palette.Valid(p.Color))
		for _, l := range p.Relationships {
			assert.NotEqual(t, p.ID, l.ID)
		}
	}
	assert.Same(t, res.Snapshot, a.Current())

	body := scrape(t, m)
	assert.Contains(t, body, `mindcloud_analyses_total{status="ok"} 1`)
	assert.Contains(t, body, `mindcloud_plans_matched_total{category="Anxiety"} 1`)
}

func TestAnalyze_Empty(t *testing.T) {
	a := newAnalyzer()
	res, err := a.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, res.Status)
	assert.Empty(t, res.Extraction.Actions)
	assert.Empty(t, res.Extraction.Subjects)
	assert.NotNil(t, res.Plans)
	assert.Empty(t, res.Plans)
	assert.True(t, res.Snapshot.Empty())
	assert.True(t, a.Current().Empty())
}

func TestAnalyze_StaleRunIsDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	blocking := layout.ProviderFunc(func(ctx context.Context, items []layout.Item) ([][3]float64, error) {
		select {
		case entered <- struct{}{}:
			<-release
		default:
		}
		return layout.NewToneSphere(10, 0).Layout(ctx, items)
	})
	m := metrics.New()
	a := newAnalyzer(WithLayout(blocking), WithMetrics(m))

	first := a.Begin()
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := a.Run(context.Background(), first, journalLine)
		done <- outcome{r, err}
	}()

	<-entered
	second := a.Begin()
	close(release)

	old := <-done
	assert.ErrorIs(t, old.err, ErrStale)
	assert.Equal(t, StatusStale, old.res.Status)
	assert.Nil(t, old.res.Snapshot)
	assert.Nil(t, a.Current(), "stale run never publishes")

	res, err := a.Run(context.Background(), second, "I am grateful for my family")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, second, a.Current().Generation)

	assert.Contains(t, scrape(t, m), `mindcloud_analyses_total{status="stale"} 1`)
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newAnalyzer().Analyze(ctx, journalLine)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_LayoutFailureLeavesPointsUnplaced(t *testing.T) {
	failing := layout.ProviderFunc(func(context.Context, []layout.Item) ([][3]float64, error) {
		return nil, errors.New("embedding service down")
	})
	res, err := newAnalyzer(WithLayout(failing)).Analyze(context.Background(), journalLine)
	require.NoError(t, err)
	require.NotEmpty(t, res.Points())
	for _, p := range res.Points() {
		assert.False(t, p.Placed)
	}
	for _, g := range res.Groups() {
		assert.Zero(t, g.Radius)
	}
}

func TestAnalyze_SharedPaletteAcrossRuns(t *testing.T) {
	reg := palette.New(palette.DefaultSeed, nil)
	a := newAnalyzer(WithPalette(reg))

	first, err := a.Analyze(context.Background(), "I was so anxious before the exam")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "Still anxious, and the deadline is close")
	require.NoError(t, err)

	p1, ok := first.Snapshot.FindWord("anxious")
	require.True(t, ok)
	p2, ok := second.Snapshot.FindWord("anxious")
	require.True(t, ok)
	assert.Equal(t, p1.Color, p2.Color)
	assert.Same(t, reg, a.Palette())
}

func TestCompare(t *testing.T) {
	a := newAnalyzer()
	_, err := a.Analyze(context.Background(), journalLine)
	require.NoError(t, err)

	rel, pa, pb, err := a.Compare("Anxious", "racing")
	require.NoError(t, err)
	assert.Equal(t, "anxious", pa.Word)
	assert.Equal(t, "racing", pb.Word)
	assert.True(t, rel.SameEmotionalGroup)
	assert.NotEmpty(t, rel.Label)

	_, _, _, err = a.Compare("anxious", "zeppelin")
	assert.ErrorIs(t, err, ErrWordNotFound)
}
