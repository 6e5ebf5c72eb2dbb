package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"today":        time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		"Yesterday":    time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		"last week":    now.AddDate(0, 0, -7),
		"3d":           now.AddDate(0, 0, -3),
		"2 weeks ago":  now.AddDate(0, 0, -14),
		"1 month":      now.AddDate(0, -1, 0),
		"12h":          now.Add(-12 * time.Hour),
		"2025-01-26":   time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC),
		"Jan 2, 2025":  time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseSince(in, now)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %v want %v", in, got, want)
	}

	_, err := ParseSince("whenever", now)
	assert.Error(t, err)
	_, err = ParseSince("  ", now)
	assert.Error(t, err)
}

func TestNewPage(t *testing.T) {
	p := NewPage(45, 20, 3)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 40, p.Offset)
	start, end := p.Range()
	assert.Equal(t, 41, start)
	assert.Equal(t, 45, end)
	assert.Equal(t, "Showing 41-45 of 45 entries (page 3 of 3)", p.Summary())
	assert.Equal(t, "--page 2 for previous", p.Navigation())

	p = NewPage(1, 20, 9)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, "Showing 1-1 of 1 entry", p.Summary())
	assert.Empty(t, p.Navigation())

	p = NewPage(0, 0, 0)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, "No entries", p.Summary())
}
