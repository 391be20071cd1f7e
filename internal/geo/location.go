// Package geo implements the fixed-point geometry primitives the atlas
// store is built on: Location, PolyLine, Polygon and Rectangle, plus the
// MapQuest-style polyline codec used to decode the wire format.
package geo

import "fmt"

// Precision7 is the number of decimal degrees of fixed-point precision a
// dm7 unit carries: 10^7 units per degree.
const Precision7 = 10000000

// dm7 bounds. Latitude is clamped to a signed 90 degree range; longitude
// to a signed 180 degree range with the upper bound exclusive, matching
// the half-open interval a fixed-point antimeridian requires.
const (
	MinLatitude  = -90 * Precision7
	MaxLatitude  = 90 * Precision7
	MinLongitude = -180 * Precision7
	MaxLongitude = 180*Precision7 - 1
)

// ErrOutOfRange indicates a Location was constructed with coordinates
// outside the permitted dm7 range.
type ErrOutOfRange struct {
	Latitude, Longitude int32
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("location out of range: lat=%d lon=%d", e.Latitude, e.Longitude)
}

// Location is a latitude/longitude pair in dm7 units (10^7 per degree).
type Location struct {
	Latitude  int32
	Longitude int32
}

// NewLocation validates and constructs a Location.
func NewLocation(latitude, longitude int32) (Location, error) {
	if latitude < MinLatitude || latitude > MaxLatitude ||
		longitude < MinLongitude || longitude > MaxLongitude {
		return Location{}, &ErrOutOfRange{Latitude: latitude, Longitude: longitude}
	}
	return Location{Latitude: latitude, Longitude: longitude}, nil
}

func (l Location) String() string {
	return fmt.Sprintf("[%d, %d]", l.Latitude, l.Longitude)
}

// Bounds returns the degenerate, zero-extent rectangle at this point.
func (l Location) Bounds() Rectangle {
	return Rectangle{LowerLeft: l, UpperRight: l}
}

// PackedInt packs the location into a 64 bit integer: latitude in the
// upper 32 bits, longitude in the lower 32 bits.
func (l Location) PackedInt() int64 {
	return (int64(l.Latitude) << 32) | (int64(l.Longitude) & 0xFFFFFFFF)
}

// LocationFromPackedInt unpacks a Location from a 64 bit packed integer,
// sign-extending both halves.
func LocationFromPackedInt(packed int64) Location {
	return Location{
		Latitude:  int32(packed >> 32),
		Longitude: int32(packed),
	}
}
