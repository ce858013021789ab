// Package spatial provides an R-tree index over placed markers.
package spatial

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"toilet-finder/internal/types"
)

const (
	dimensions  = 2
	minChildren = 4
	maxChildren = 16
	tolerance   = 1e-9

	// meters
	initialSearchRadius = 500.0
	maxSearchRadius     = 1_000_000.0
)

// ErrInvalidQuery is returned for a malformed bounding box or radius
var ErrInvalidQuery = errors.New("invalid spatial query")

// entry wraps a marker position for R-tree indexing
type entry struct {
	id    uuid.UUID
	point types.MapPoint
	rect  rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an R-tree keyed by marker id. It is not safe for concurrent use;
// the owning map surface serialises access.
type Index struct {
	tree    *rtreego.Rtree
	entries map[uuid.UUID]*entry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(dimensions, minChildren, maxChildren),
		entries: make(map[uuid.UUID]*entry),
	}
}

// Insert adds or replaces the position for id
func (x *Index) Insert(id uuid.UUID, point types.MapPoint) {
	x.Remove(id)

	e := &entry{
		id:    id,
		point: point,
		rect:  rtreego.Point{point.Latitude, point.Longitude}.ToRect(tolerance),
	}
	x.tree.Insert(e)
	x.entries[id] = e
}

// Remove deletes id from the index, reporting whether it was present
func (x *Index) Remove(id uuid.UUID) bool {
	e, ok := x.entries[id]
	if !ok {
		return false
	}
	delete(x.entries, id)
	return x.tree.Delete(e)
}

// Clear removes every entry
func (x *Index) Clear() {
	x.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	x.entries = make(map[uuid.UUID]*entry)
}

// Len returns the number of indexed markers
func (x *Index) Len() int {
	return len(x.entries)
}

// Within returns the ids inside bound, which is in orb [lon, lat] order
func (x *Index) Within(bound orb.Bound) ([]uuid.UUID, error) {
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{bound.Bottom() - tolerance, bound.Left() - tolerance},
		rtreego.Point{bound.Top() + tolerance, bound.Right() + tolerance},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: bounding box: %v", ErrInvalidQuery, err)
	}

	results := x.tree.SearchIntersect(rect)
	ids := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		e, ok := r.(*entry)
		if !ok {
			continue
		}
		if bound.Contains(e.point.Orb()) {
			ids = append(ids, e.id)
		}
	}
	return ids, nil
}

// Nearby returns the ids within radiusMeters of center, closest first
func (x *Index) Nearby(center types.MapPoint, radiusMeters float64) ([]uuid.UUID, error) {
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidQuery, radiusMeters)
	}

	bound := geo.NewBoundAroundPoint(center.Orb(), radiusMeters)
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{bound.Bottom(), bound.Left()},
		rtreego.Point{bound.Top(), bound.Right()},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: radius search: %v", ErrInvalidQuery, err)
	}

	var hits []ranked
	for _, r := range x.tree.SearchIntersect(rect) {
		e, ok := r.(*entry)
		if !ok {
			continue
		}
		// The box is a coarse filter; the haversine distance is authoritative
		if d := geo.Distance(center.Orb(), e.point.Orb()); d <= radiusMeters {
			hits = append(hits, ranked{id: e.id, meters: d})
		}
	}
	return sortRanked(hits), nil
}

// Nearest returns up to n ids ordered by great-circle distance from center.
// Radius searches grow until one holds n markers; past maxSearchRadius the
// whole index is ranked instead.
func (x *Index) Nearest(center types.MapPoint, n int) []uuid.UUID {
	if n <= 0 || len(x.entries) == 0 {
		return nil
	}
	n = min(n, len(x.entries))

	for radius := initialSearchRadius; radius <= maxSearchRadius; radius *= 4 {
		ids, err := x.Nearby(center, radius)
		if err != nil {
			break
		}
		if len(ids) >= n {
			return ids[:n]
		}
	}

	hits := make([]ranked, 0, len(x.entries))
	for _, e := range x.entries {
		hits = append(hits, ranked{id: e.id, meters: geo.Distance(center.Orb(), e.point.Orb())})
	}
	return sortRanked(hits)[:n]
}

type ranked struct {
	id     uuid.UUID
	meters float64
}

func sortRanked(hits []ranked) []uuid.UUID {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].meters < hits[j].meters
	})
	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}
