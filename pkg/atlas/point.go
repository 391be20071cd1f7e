package atlas

import (
	"fmt"

	"github.com/atlasgo/atlas/internal/geo"
)

// Point is a standalone location with tags: the lightest-weight flyweight.
type Point struct {
	entityRef
}

func (a *Atlas) pointAt(row int) (Point, error) {
	ids, err := a.store.Identifiers(KindPoint)
	if err != nil {
		return Point{}, err
	}
	return Point{entityRef{atlas: a, kind: KindPoint, row: row, id: ids[row]}}, nil
}

// Location returns the point's geometry.
func (p Point) Location() (geo.Location, error) {
	locs, err := p.atlas.store.Locations(KindPoint)
	if err != nil {
		return geo.Location{}, err
	}
	return geo.LocationFromPackedInt(locs[p.row]), nil
}

// Bounds returns the point's degenerate, zero-extent bounding rectangle.
func (p Point) Bounds() (geo.Rectangle, error) {
	loc, err := p.Location()
	if err != nil {
		return geo.Rectangle{}, err
	}
	return loc.Bounds(), nil
}

// Intersects reports strict interior point-in-polygon containment.
func (p Point) Intersects(poly geo.Polygon) (bool, error) {
	loc, err := p.Location()
	if err != nil {
		return false, err
	}
	return poly.FullyGeometricallyEnclosesLocation(loc), nil
}

func (p Point) String() string {
	loc, _ := p.Location()
	return fmt.Sprintf("Point [identifier=%d, location=%v]", p.id, loc)
}
