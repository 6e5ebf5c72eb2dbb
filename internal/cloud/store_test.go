package cloud

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/mindcloud/internal/analysis"
)

func testSnapshot(gen uint64) *Snapshot {
	points := []Point{
		placed("a", "Joy", 0, 0, 0, 0.9, "b"),
		placed("b", "Joy", 1, 0, 0, 0.85, "a"),
		placed("c", "Anxiety", 5, 0, 0, 0.2),
		placed("d", "Sadness", 30, 0, 0, 0.1),
	}
	return NewSnapshot(gen, analysis.Extraction{}, points, SnapshotOptions{Relationships: 2, SpatialNorm: 20})
}

func TestNewSnapshot_Relationships(t *testing.T) {
	s := testSnapshot(1)
	for _, p := range s.Points {
		assert.LessOrEqual(t, len(p.Relationships), 2)
		for i, l := range p.Relationships {
			assert.NotEqual(t, p.ID, l.ID)
			assert.Greater(t, l.Strength, 0.0)
			if i > 0 {
				assert.GreaterOrEqual(t, p.Relationships[i-1].Strength, l.Strength)
			}
		}
	}

	a, ok := s.Point("a")
	require.True(t, ok)
	require.NotEmpty(t, a.Relationships)
	assert.Equal(t, "b", a.Relationships[0].ID)

	conn := s.Connected("a", 1)
	require.Len(t, conn, 1)
	assert.Equal(t, "b", conn[0].ID)
	assert.Nil(t, s.Connected("missing", 3))

	assert.Equal(t, 2, s.Index("c"))
	assert.Equal(t, -1, s.Index("zz"))
	_, ok = s.FindWord("d")
	assert.True(t, ok)
}

func TestStore_PublishIgnoresOlderGenerations(t *testing.T) {
	var st Store
	assert.Nil(t, st.Load())

	assert.True(t, st.Publish(testSnapshot(2)))
	assert.False(t, st.Publish(testSnapshot(1)))
	assert.Equal(t, uint64(2), st.Load().Generation)
	assert.True(t, st.Publish(testSnapshot(3)))
	assert.Equal(t, uint64(3), st.Load().Generation)
}

func TestStore_ConcurrentPublish(t *testing.T) {
	var st Store
	var wg sync.WaitGroup
	for g := uint64(1); g <= 20; g++ {
		wg.Add(1)
		go func(g uint64) {
			defer wg.Done()
			st.Publish(testSnapshot(g))
		}(g)
	}
	wg.Wait()
	assert.Equal(t, uint64(20), st.Load().Generation)
}

func TestSnapshot_NilSafe(t *testing.T) {
	var s *Snapshot
	assert.True(t, s.Empty())
	_, ok := s.Point("a")
	assert.False(t, ok)
	assert.Equal(t, -1, s.Index("a"))
}
