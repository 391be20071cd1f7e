package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square(side int32) Polygon {
	return Polygon{Vertices: []Location{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: side},
		{Latitude: side, Longitude: side},
		{Latitude: side, Longitude: 0},
	}}
}

func TestFullyGeometricallyEnclosesLocationIsStrictInterior(t *testing.T) {
	sq := square(10 * Precision7)

	interior := Location{Latitude: 5 * Precision7, Longitude: 5 * Precision7}
	assert.True(t, sq.FullyGeometricallyEnclosesLocation(interior))

	onBoundary := Location{Latitude: 0, Longitude: 5 * Precision7}
	assert.False(t, sq.FullyGeometricallyEnclosesLocation(onBoundary))

	exterior := Location{Latitude: -1 * Precision7, Longitude: -1 * Precision7}
	assert.False(t, sq.FullyGeometricallyEnclosesLocation(exterior))
}

func TestOverlapsPolylineCountsTouchingAsOverlap(t *testing.T) {
	sq := square(10 * Precision7)

	crossing := PolyLine{Vertices: []Location{
		{Latitude: -1 * Precision7, Longitude: 5 * Precision7},
		{Latitude: 11 * Precision7, Longitude: 5 * Precision7},
	}}
	assert.True(t, sq.OverlapsPolyline(crossing))

	onEdge := PolyLine{Vertices: []Location{
		{Latitude: 0, Longitude: 2 * Precision7},
		{Latitude: 0, Longitude: 8 * Precision7},
	}}
	assert.True(t, sq.OverlapsPolyline(onEdge))

	disjoint := PolyLine{Vertices: []Location{
		{Latitude: 20 * Precision7, Longitude: 20 * Precision7},
		{Latitude: 21 * Precision7, Longitude: 21 * Precision7},
	}}
	assert.False(t, sq.OverlapsPolyline(disjoint))
}

func TestOverlapsPolygonContainmentCountsAsOverlap(t *testing.T) {
	outer := square(10 * Precision7)
	inner := Polygon{Vertices: []Location{
		{Latitude: 2 * Precision7, Longitude: 2 * Precision7},
		{Latitude: 2 * Precision7, Longitude: 4 * Precision7},
		{Latitude: 4 * Precision7, Longitude: 4 * Precision7},
		{Latitude: 4 * Precision7, Longitude: 2 * Precision7},
	}}
	assert.True(t, outer.OverlapsPolygon(inner))
	assert.True(t, inner.OverlapsPolygon(outer))

	disjoint := Polygon{Vertices: []Location{
		{Latitude: 20 * Precision7, Longitude: 20 * Precision7},
		{Latitude: 20 * Precision7, Longitude: 21 * Precision7},
		{Latitude: 21 * Precision7, Longitude: 21 * Precision7},
		{Latitude: 21 * Precision7, Longitude: 20 * Precision7},
	}}
	assert.False(t, outer.OverlapsPolygon(disjoint))
}

func TestPolygonBounds(t *testing.T) {
	sq := square(10 * Precision7)
	bounds := sq.Bounds()
	assert.Equal(t, int32(0), bounds.LowerLeft.Latitude)
	assert.Equal(t, int32(10*Precision7), bounds.UpperRight.Latitude)
}
