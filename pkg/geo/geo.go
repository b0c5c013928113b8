package geo

import (
	"errors"
	"fmt"
	"math"
)

// Projection limits. LatitudeMax is the vertical bound of the web-Mercator
// projection; latitudes beyond it have no finite pixel coordinate.
const (
	LatitudeMax  = 85.05112877980659
	LatitudeMin  = -LatitudeMax
	LongitudeMax = 180.0
	LongitudeMin = -180.0

	ZoomMin byte = 0
	ZoomMax byte = 22
)

// ErrInvalidPosition marks map positions outside the supported domain
// (non-finite coordinates, latitude beyond the Mercator bound, zoom level
// above ZoomMax). Test with errors.Is.
var ErrInvalidPosition = errors.New("geo: invalid map position")

// GeoPoint is a geographic coordinate in degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

func (p GeoPoint) validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) ||
		math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return fmt.Errorf("%w: non-finite coordinate (%v, %v)", ErrInvalidPosition, p.Latitude, p.Longitude)
	}
	if p.Latitude < LatitudeMin || p.Latitude > LatitudeMax {
		return fmt.Errorf("%w: latitude %v outside [%v, %v]", ErrInvalidPosition, p.Latitude, LatitudeMin, LatitudeMax)
	}
	if p.Longitude < LongitudeMin || p.Longitude > LongitudeMax {
		return fmt.Errorf("%w: longitude %v outside [%v, %v]", ErrInvalidPosition, p.Longitude, LongitudeMin, LongitudeMax)
	}
	return nil
}

// MapPosition is the viewport state read once per frame: center point plus
// discrete zoom level.
type MapPosition struct {
	Center GeoPoint
	Zoom   byte
}

// Validate reports whether the position lies in the supported projection
// domain. All errors wrap ErrInvalidPosition.
func (p MapPosition) Validate() error {
	if p.Zoom > ZoomMax {
		return fmt.Errorf("%w: zoom level %d above maximum %d", ErrInvalidPosition, p.Zoom, ZoomMax)
	}
	return p.Center.validate()
}

// BoundingBox is the geographic rectangle visible through a viewport.
// Recomputed every frame, never cached across frames.
type BoundingBox struct {
	MinLatitude  float64
	MinLongitude float64
	MaxLatitude  float64
	MaxLongitude float64
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Latitude >= b.MinLatitude && p.Latitude <= b.MaxLatitude &&
		p.Longitude >= b.MinLongitude && p.Longitude <= b.MaxLongitude
}

// Intersects reports whether the two boxes share any area.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinLatitude <= other.MaxLatitude && b.MaxLatitude >= other.MinLatitude &&
		b.MinLongitude <= other.MaxLongitude && b.MaxLongitude >= other.MinLongitude
}
