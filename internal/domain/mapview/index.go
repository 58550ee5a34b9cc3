package mapview

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/FACorreiaa/travelvibe-api/internal/types"
)

const (
	dimensions  = 2
	minChildren = 2
	maxChildren = 8
	tolerance   = 0.0001
)

type spatialLocation struct {
	loc  types.MapLocation
	rect *rtreego.Rect
}

func (s *spatialLocation) Bounds() *rtreego.Rect {
	return s.rect
}

// Index is an R-tree over map locations. It is immutable once built and safe
// for concurrent reads.
type Index struct {
	tree  *rtreego.Rtree
	count int
}

// NewIndex builds an index over locs. Locations with out of range
// coordinates are skipped.
func NewIndex(locs []types.MapLocation) *Index {
	items := make([]rtreego.Spatial, 0, len(locs))
	for _, loc := range locs {
		if !loc.Coordinates().Valid() {
			continue
		}
		p := rtreego.Point{loc.Latitude, loc.Longitude}
		items = append(items, &spatialLocation{loc: loc, rect: p.ToRect(tolerance)})
	}
	return &Index{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren, items...),
		count: len(items),
	}
}

// Len returns the number of indexed locations.
func (idx *Index) Len() int {
	return idx.count
}

// Nearest returns up to k locations closest to from, nearest first, with
// DistanceKm set.
func (idx *Index) Nearest(from types.Coordinates, k int) []types.MapLocation {
	if k <= 0 || idx.count == 0 {
		return []types.MapLocation{}
	}

	// the tree ranks by planar degrees, which shrink in longitude away from the
	// equator; rank every location by great-circle distance instead
	results := idx.tree.NearestNeighbors(idx.count, rtreego.Point{from.Latitude, from.Longitude})

	out := make([]types.MapLocation, 0, len(results))
	for _, r := range results {
		sl, ok := r.(*spatialLocation)
		if !ok || sl == nil {
			continue
		}
		loc := sl.loc
		d := Distance(from, loc.Coordinates())
		loc.DistanceKm = &d
		out = append(out, loc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
