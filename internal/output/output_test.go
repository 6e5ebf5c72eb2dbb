package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/db"
	"github.com/ramanasai/mindcloud/internal/pipeline"
	"github.com/ramanasai/mindcloud/internal/utils"
)

const journal = "I feel so anxious and my heart is racing, but I also felt joy seeing my friend"

func analyze(t *testing.T) pipeline.Result {
	t.Helper()
	a := pipeline.NewAnalyzer(pipeline.OptionsFromConfig(config.Default()))
	res, err := a.Analyze(context.Background(), journal)
	require.NoError(t, err)
	require.Equal(t, pipeline.StatusOK, res.Status)
	return res
}

func renderer(f Format) *Renderer {
	return NewRenderer(&RenderConfig{Format: f, Width: 80, Location: time.UTC})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatDefault, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRenderReport_Default(t *testing.T) {
	rep := NewReport("stdin", analyze(t), false)
	out, err := renderer(FormatDefault).RenderReport(rep)
	require.NoError(t, err)

	assert.Contains(t, out, "Emotional analysis")
	assert.Contains(t, out, "Anxiety")
	assert.Contains(t, out, "heart")
	assert.Contains(t, out, "Suggested plans")
	for _, p := range rep.Plans {
		assert.Contains(t, out, p.Title)
	}
}

func TestRenderReport_JSON(t *testing.T) {
	rep := NewReport("stdin", analyze(t), true)
	out, err := renderer(FormatJSON).RenderReport(rep)
	require.NoError(t, err)

	var back Report
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, "ok", back.Status)
	assert.Len(t, back.Points, len(rep.Points))
	assert.Equal(t, len(rep.Groups), len(back.Groups))
	var names []string
	for _, g := range back.Groups {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "Anxiety")
}

func TestRenderReport_EmptyAndCompact(t *testing.T) {
	a := pipeline.NewAnalyzer(pipeline.Options{})
	res, err := a.Analyze(context.Background(), "   ")
	require.NoError(t, err)

	rep := NewReport("", res, false)
	assert.NotNil(t, rep.Plans)
	assert.NotNil(t, rep.Groups)

	out, err := renderer(FormatDefault).RenderReport(rep)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to analyze")

	out, err = renderer(FormatCompact).RenderReport(NewReport("", analyze(t), false))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ok "))
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestRenderEntryList(t *testing.T) {
	rows := []db.Entry{
		{ID: 2, TS: time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC), Category: "dream", Text: "the sea, again"},
		{ID: 1, TS: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), Category: "note", Text: "ordinary",
			Tags: sql.NullString{String: "work", Valid: true}},
	}
	list := NewEntryList(rows, utils.NewPage(5, 2, 1), map[string]string{"since": "1 week"})

	out, err := renderer(FormatDefault).RenderEntryList(list)
	require.NoError(t, err)
	assert.Contains(t, out, "since")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "#work")
	assert.Contains(t, out, "Showing 1-2 of 5 entries (page 1 of 3)")
	assert.Contains(t, out, "--page 2 for next")

	out, err = renderer(FormatCSV).RenderEntryList(list)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,timestamp,category,tags,text", lines[0])
	assert.Equal(t, `2,2025-03-02T09:30:00Z,dream,,"the sea, again"`, lines[1])
}

func TestRenderComparison(t *testing.T) {
	c := Comparison{A: "joy", B: "friend", Relationship: cloud.Relationship{
		SpatialSimilarity: 0.5, SameEmotionalGroup: true, SharedKeywords: []string{"seeing"},
		Overall: 0.6, Label: cloud.StrengthLabel(0.6),
	}}
	out, err := renderer(FormatDefault).RenderComparison(c)
	require.NoError(t, err)
	assert.Contains(t, out, "Closely Related")
	assert.Contains(t, out, "seeing")

	out, err = renderer(FormatCompact).RenderComparison(c)
	require.NoError(t, err)
	assert.Equal(t, "joy~friend 0.60 Closely Related\n", out)
}
