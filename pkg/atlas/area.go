package atlas

import (
	"fmt"

	"github.com/atlasgo/atlas/internal/geo"
)

// Area is a standalone, implicitly-closed polygon with tags.
type Area struct {
	entityRef
}

func (a *Atlas) areaAt(row int) (Area, error) {
	ids, err := a.store.Identifiers(KindArea)
	if err != nil {
		return Area{}, err
	}
	return Area{entityRef{atlas: a, kind: KindArea, row: row, id: ids[row]}}, nil
}

// AsPolygon returns the area's geometry.
func (ar Area) AsPolygon() (geo.Polygon, error) {
	polys, err := ar.atlas.store.Polygons(KindArea)
	if err != nil {
		return geo.Polygon{}, err
	}
	return polys[ar.row], nil
}

// Bounds returns the min/max rectangle over the polygon's vertices.
func (ar Area) Bounds() (geo.Rectangle, error) {
	poly, err := ar.AsPolygon()
	if err != nil {
		return geo.Rectangle{}, err
	}
	return poly.Bounds(), nil
}

// Intersects reports polygon/polygon intersection (one fully containing
// the other counts as intersecting).
func (ar Area) Intersects(other geo.Polygon) (bool, error) {
	poly, err := ar.AsPolygon()
	if err != nil {
		return false, err
	}
	return poly.OverlapsPolygon(other), nil
}

func (ar Area) String() string {
	return fmt.Sprintf("Area [identifier=%d]", ar.id)
}
