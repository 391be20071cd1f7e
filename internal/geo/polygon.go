package geo

import (
	"github.com/paulmach/orb"
)

// The predicates below take orb.Point/orb.Ring as their working
// coordinates but implement ray casting and segment intersection by
// hand rather than through orb/planar: this package needs a strict-
// interior variant (FullyGeometricallyEnclosesLocation, boundary
// excluded) and a touching-counts-as-overlap variant (OverlapsPolyline,
// OverlapsPolygon) of the same containment test, plus a polyline/ring
// edge-crossing test, and orb/planar exposes neither the boundary split
// nor a standalone segment-intersection primitive. orb's types stay the
// shared currency so callers and internal/spatial agree on one point
// representation.

// degreesPerUnit converts a dm7 fixed-point value to floating-point
// decimal degrees, the only place coordinates leave integer arithmetic.
const degreesPerUnit = 1.0 / float64(Precision7)

// Polygon is a closed ring of vertices. The closing vertex (equal to the
// first) is never stored; callers that need the closed form use
// ClosedLoop.
type Polygon struct {
	Vertices []Location
}

// ClosedLoop returns the polygon's vertices with the first vertex
// repeated at the end, tracing a closed ring.
func (p Polygon) ClosedLoop() []Location {
	if len(p.Vertices) == 0 {
		return nil
	}
	loop := make([]Location, len(p.Vertices)+1)
	copy(loop, p.Vertices)
	loop[len(p.Vertices)] = p.Vertices[0]
	return loop
}

// Bounds returns the min/max rectangle over the polygon's vertices.
func (p Polygon) Bounds() Rectangle {
	bounds, err := BoundsOfLocations(p.Vertices)
	if err != nil {
		return Rectangle{}
	}
	return bounds
}

func (p Polygon) ring() orb.Ring {
	loop := p.ClosedLoop()
	ring := make(orb.Ring, len(loop))
	for i, v := range loop {
		ring[i] = orb.Point{float64(v.Longitude) * degreesPerUnit, float64(v.Latitude) * degreesPerUnit}
	}
	return ring
}

// FullyGeometricallyEnclosesLocation reports strict interior containment:
// a point exactly on the boundary is not enclosed.
func (p Polygon) FullyGeometricallyEnclosesLocation(loc Location) bool {
	pt := orb.Point{float64(loc.Longitude) * degreesPerUnit, float64(loc.Latitude) * degreesPerUnit}
	return ringStrictlyContainsPoint(p.ring(), pt)
}

// OverlapsPolyline reports whether the polyline shares any point with
// this polygon's boundary or interior (containment counts as overlap).
func (p Polygon) OverlapsPolyline(l PolyLine) bool {
	ring := p.ring()
	pts := make([]orb.Point, len(l.Vertices))
	for i, v := range l.Vertices {
		pts[i] = orb.Point{float64(v.Longitude) * degreesPerUnit, float64(v.Latitude) * degreesPerUnit}
	}
	for _, pt := range pts {
		if ringContainsOrOnBoundary(ring, pt) {
			return true
		}
	}
	for i := 0; i+1 < len(pts); i++ {
		for j := 0; j+1 < len(ring); j++ {
			if segmentsIntersect(pts[i], pts[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

// OverlapsPolygon reports whether two polygons share any area, boundary,
// or full containment of one within the other.
func (p Polygon) OverlapsPolygon(other Polygon) bool {
	a, b := p.ring(), other.ring()
	for _, pt := range a {
		if ringContainsOrOnBoundary(b, pt) {
			return true
		}
	}
	for _, pt := range b {
		if ringContainsOrOnBoundary(a, pt) {
			return true
		}
	}
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// ringStrictlyContainsPoint implements ray casting with a boundary check:
// points on an edge return false rather than true.
func ringStrictlyContainsPoint(ring orb.Ring, pt orb.Point) bool {
	if pointOnRingBoundary(ring, pt) {
		return false
	}
	return rayCast(ring, pt)
}

// ringContainsOrOnBoundary is ray casting without the boundary exclusion,
// used where touching counts as overlap.
func ringContainsOrOnBoundary(ring orb.Ring, pt orb.Point) bool {
	if pointOnRingBoundary(ring, pt) {
		return true
	}
	return rayCast(ring, pt)
}

func rayCast(ring orb.Ring, pt orb.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > pt[1]) != (yj > pt[1]) {
			xIntersect := xi + (pt[1]-yi)/(yj-yi)*(xj-xi)
			if pt[0] < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnRingBoundary(ring orb.Ring, pt orb.Point) bool {
	for i := 0; i+1 < len(ring); i++ {
		if pointOnSegment(ring[i], ring[i+1], pt) {
			return true
		}
	}
	return false
}

func pointOnSegment(a, b, pt orb.Point) bool {
	cross := (b[0]-a[0])*(pt[1]-a[1]) - (b[1]-a[1])*(pt[0]-a[0])
	const epsilon = 1e-12
	if cross > epsilon || cross < -epsilon {
		return false
	}
	if pt[0] < minFloat(a[0], b[0])-epsilon || pt[0] > maxFloat(a[0], b[0])+epsilon {
		return false
	}
	if pt[1] < minFloat(a[1], b[1])-epsilon || pt[1] > maxFloat(a[1], b[1])+epsilon {
		return false
	}
	return true
}

// segmentsIntersect is the standard orientation-predicate segment
// intersection test, including the collinear-overlap special cases.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && pointOnSegment(p1, p2, p3) {
		return true
	}
	if o2 == 0 && pointOnSegment(p1, p2, p4) {
		return true
	}
	if o3 == 0 && pointOnSegment(p3, p4, p1) {
		return true
	}
	if o4 == 0 && pointOnSegment(p3, p4, p2) {
		return true
	}
	return false
}

// orientation returns 0 for collinear, 1 for clockwise, 2 for
// counter-clockwise, the classic cross-product sign test.
func orientation(a, b, c orb.Point) int {
	val := (b[1]-a[1])*(c[0]-b[0]) - (b[0]-a[0])*(c[1]-b[1])
	const epsilon = 1e-12
	if val > -epsilon && val < epsilon {
		return 0
	}
	if val > 0 {
		return 1
	}
	return 2
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// DecodePolygon decodes a byte string using the same grammar as
// DecodePolyLine; the caller wraps the resulting vertex list as a
// Polygon (the closing edge is synthesized on demand by ClosedLoop).
func DecodePolygon(data []byte) (Polygon, error) {
	line, err := DecodePolyLine(data)
	if err != nil {
		return Polygon{}, err
	}
	return Polygon{Vertices: line.Vertices}, nil
}

// Encode produces the delta/varint/zigzag byte string for this polygon's
// open vertex list (the closing vertex is not encoded).
func (p Polygon) Encode() ([]byte, error) {
	return PolyLine{Vertices: p.Vertices}.Encode()
}
