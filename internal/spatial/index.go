// Package spatial implements the per-entity-kind spatial index: a
// bulk-built, bounding-box R-tree over row indices, built lazily the
// first time a kind is queried.
package spatial

import (
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/atlasgo/atlas/internal/geo"
)

const degreesPerUnit = 1.0 / float64(geo.Precision7)

// minChildren/maxChildren mirror the teacher's own R-tree sizing
// (pkg/s57/index.go's rtreego.NewTree(2, 25, 50)).
const (
	minChildren = 25
	maxChildren = 50
)

// toRect converts a dm7 Rectangle into an rtreego.Rect in decimal
// degrees, padding degenerate (zero-area) rectangles by an epsilon so
// point geometries remain indexable.
func toRect(r geo.Rectangle) rtreego.Rect {
	ll, ur := r.LowerLeft, r.UpperRight
	width := (float64(ur.Longitude) - float64(ll.Longitude)) * degreesPerUnit
	height := (float64(ur.Latitude) - float64(ll.Latitude)) * degreesPerUnit
	const epsilon = 1e-9
	if width <= 0 {
		width = epsilon
	}
	if height <= 0 {
		height = epsilon
	}
	point := rtreego.Point{float64(ll.Longitude) * degreesPerUnit, float64(ll.Latitude) * degreesPerUnit}
	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

// Entry is one row's bounding box, the payload the index stores and
// returns from a query.
type Entry struct {
	Row    int
	Bounds geo.Rectangle
}

// spatialEntry is the rtreego.Spatial adapter for Entry; rtreego
// requires the method to be named exactly Bounds, which collides with
// Entry's own Bounds field, so the adapter lives on a wrapper type.
type spatialEntry struct {
	Entry
}

func (s spatialEntry) Bounds() rtreego.Rect {
	return toRect(s.Entry.Bounds)
}

// Index is an immutable-once-built R-tree over a single entity kind's
// row bounds.
type Index struct {
	rtree *rtreego.Rtree
	count int
}

// Build bulk-constructs an Index from every row's bounds. The reference
// implementation rebuilds the whole tree on each insert because it
// populates the tree one entity at a time during first use; since
// nothing here requires incremental inserts after the read-only atlas is
// open, this builds the tree once in one bulk Insert loop instead.
func Build(entries []Entry) *Index {
	tree := rtreego.NewTree(2, minChildren, maxChildren)
	for _, e := range entries {
		tree.Insert(spatialEntry{e})
	}
	return &Index{rtree: tree, count: len(entries)}
}

// Query returns the row indices whose bounds intersect rect. The result
// is a coarse candidate set: callers must still apply the exact
// geometric predicate for their query.
func (idx *Index) Query(rect geo.Rectangle) []int {
	queryRect := toRect(rect)
	results := idx.rtree.SearchIntersect(queryRect)
	rows := make([]int, len(results))
	for i, r := range results {
		rows[i] = r.(spatialEntry).Row
	}
	return rows
}

func (idx *Index) String() string {
	return fmt.Sprintf("spatial.Index{%d entries}", idx.count)
}
