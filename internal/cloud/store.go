package cloud

import (
	"sync/atomic"

	"github.com/ramanasai/mindcloud/internal/analysis"
)

// SnapshotOptions tunes relationship precomputation.
type SnapshotOptions struct {
	Relationships int     // links kept per point
	SpatialNorm   float64 // see Relate
}

// Snapshot is an immutable analysis result: points plus their groups.
// It is replaced as a whole on re-analysis.
type Snapshot struct {
	Generation  uint64
	Extraction  analysis.Extraction
	Points      []Point
	Groups      []Group
	SpatialNorm float64

	byID map[string]int
}

// NewSnapshot links points, groups them by tone and indexes them by id.
// points is taken over by the snapshot.
func NewSnapshot(generation uint64, x analysis.Extraction, points []Point, opts SnapshotOptions) *Snapshot {
	if opts.SpatialNorm <= 0 {
		opts.SpatialNorm = DefaultSpatialNorm
	}
	linkPoints(points, opts.Relationships, opts.SpatialNorm)

	s := &Snapshot{
		Generation:  generation,
		Extraction:  x,
		Points:      points,
		Groups:      GroupByTone(points),
		SpatialNorm: opts.SpatialNorm,
		byID:        make(map[string]int, len(points)),
	}
	for i, p := range points {
		s.byID[p.ID] = i
	}
	return s
}

// Empty reports whether the snapshot has nothing to draw.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Points) == 0
}

// Point looks a point up by id.
func (s *Snapshot) Point(id string) (Point, bool) {
	if s == nil {
		return Point{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Point{}, false
	}
	return s.Points[i], true
}

// Index returns the slice index of id, or -1.
func (s *Snapshot) Index(id string) int {
	if s == nil {
		return -1
	}
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// FindWord returns the first point whose word matches.
func (s *Snapshot) FindWord(word string) (Point, bool) {
	if s == nil {
		return Point{}, false
	}
	for _, p := range s.Points {
		if p.Word == word {
			return p, true
		}
	}
	return Point{}, false
}

// Connected returns up to n of the point's precomputed partners, strongest first.
func (s *Snapshot) Connected(id string, n int) []Point {
	p, ok := s.Point(id)
	if !ok || n <= 0 {
		return nil
	}
	links := p.Relationships
	if len(links) > n {
		links = links[:n]
	}
	out := make([]Point, 0, len(links))
	for _, l := range links {
		if q, ok := s.Point(l.ID); ok {
			out = append(out, q)
		}
	}
	return out
}

// Compare scores two points of this snapshot with its spatial normalization.
func (s *Snapshot) Compare(a, b Point) Relationship {
	norm := DefaultSpatialNorm
	if s != nil && s.SpatialNorm > 0 {
		norm = s.SpatialNorm
	}
	return Relate(a, b, norm)
}

// Store holds the current snapshot. Readers never observe a partial update.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first Publish.
func (st *Store) Load() *Snapshot {
	return st.current.Load()
}

// Publish installs s unless a snapshot from a newer generation is already
// current. It reports whether s was installed.
func (st *Store) Publish(s *Snapshot) bool {
	for {
		cur := st.current.Load()
		if cur != nil && s != nil && cur.Generation > s.Generation {
			return false
		}
		if st.current.CompareAndSwap(cur, s) {
			return true
		}
	}
}
