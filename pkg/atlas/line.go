package atlas

import (
	"fmt"

	"github.com/atlasgo/atlas/internal/geo"
)

// Line is a standalone polyline with tags.
type Line struct {
	entityRef
}

func (a *Atlas) lineAt(row int) (Line, error) {
	ids, err := a.store.Identifiers(KindLine)
	if err != nil {
		return Line{}, err
	}
	return Line{entityRef{atlas: a, kind: KindLine, row: row, id: ids[row]}}, nil
}

// AsPolyLine returns the line's geometry.
func (l Line) AsPolyLine() (geo.PolyLine, error) {
	lines, err := l.atlas.store.PolyLines(KindLine)
	if err != nil {
		return geo.PolyLine{}, err
	}
	return lines[l.row], nil
}

// Bounds returns the min/max rectangle over the line's vertices.
func (l Line) Bounds() (geo.Rectangle, error) {
	pl, err := l.AsPolyLine()
	if err != nil {
		return geo.Rectangle{}, err
	}
	return pl.Bounds(), nil
}

// Intersects reports polyline/polygon overlap (touching or containment
// counts as overlap).
func (l Line) Intersects(poly geo.Polygon) (bool, error) {
	pl, err := l.AsPolyLine()
	if err != nil {
		return false, err
	}
	return poly.OverlapsPolyline(pl), nil
}

func (l Line) String() string {
	return fmt.Sprintf("Line [identifier=%d]", l.id)
}
