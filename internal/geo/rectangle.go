package geo

import "fmt"

// ErrEmptyBounds indicates an attempt to bound an empty sequence of
// locations or entities.
type ErrEmptyBounds struct{}

func (e *ErrEmptyBounds) Error() string {
	return "cannot compute bounds of an empty sequence"
}

// Rectangle is an axis-aligned bounding box, stored as its lower-left and
// upper-right corners. It must not cross the antimeridian.
type Rectangle struct {
	LowerLeft  Location
	UpperRight Location
}

// NewRectangle builds a Rectangle from its two corners.
func NewRectangle(lowerLeft, upperRight Location) Rectangle {
	return Rectangle{LowerLeft: lowerLeft, UpperRight: upperRight}
}

// Polygon returns the four-vertex closed polygon tracing this rectangle
// counter-clockwise from the lower-left corner.
func (r Rectangle) Polygon() Polygon {
	return Polygon{Vertices: []Location{
		r.LowerLeft,
		{Latitude: r.LowerLeft.Latitude, Longitude: r.UpperRight.Longitude},
		r.UpperRight,
		{Latitude: r.UpperRight.Latitude, Longitude: r.LowerLeft.Longitude},
	}}
}

// Intersects reports whether the two rectangles share any area or edge.
func (r Rectangle) Intersects(other Rectangle) bool {
	if r.UpperRight.Longitude < other.LowerLeft.Longitude || other.UpperRight.Longitude < r.LowerLeft.Longitude {
		return false
	}
	if r.UpperRight.Latitude < other.LowerLeft.Latitude || other.UpperRight.Latitude < r.LowerLeft.Latitude {
		return false
	}
	return true
}

// Union returns the smallest rectangle containing both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	return Rectangle{
		LowerLeft: Location{
			Latitude:  minInt32(r.LowerLeft.Latitude, other.LowerLeft.Latitude),
			Longitude: minInt32(r.LowerLeft.Longitude, other.LowerLeft.Longitude),
		},
		UpperRight: Location{
			Latitude:  maxInt32(r.UpperRight.Latitude, other.UpperRight.Latitude),
			Longitude: maxInt32(r.UpperRight.Longitude, other.UpperRight.Longitude),
		},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%v -> %v]", r.LowerLeft, r.UpperRight)
}

// BoundsOfLocations returns the smallest axis-aligned rectangle enclosing
// all given locations. Fails with ErrEmptyBounds if locs is empty.
func BoundsOfLocations(locs []Location) (Rectangle, error) {
	if len(locs) == 0 {
		return Rectangle{}, &ErrEmptyBounds{}
	}
	bounds := locs[0].Bounds()
	for _, l := range locs[1:] {
		bounds = bounds.Union(l.Bounds())
	}
	return bounds, nil
}

// BoundsOfRectangles returns the union of a non-empty slice of rectangles.
// Fails with ErrEmptyBounds if rects is empty.
func BoundsOfRectangles(rects []Rectangle) (Rectangle, error) {
	if len(rects) == 0 {
		return Rectangle{}, &ErrEmptyBounds{}
	}
	bounds := rects[0]
	for _, r := range rects[1:] {
		bounds = bounds.Union(r)
	}
	return bounds, nil
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
