package geo

import (
	"fmt"
	"math"

	"github.com/kjkrol/gokg/pkg/geom"
)

// TileSize is the side of a map tile in pixels. MapSize and the pixel
// conversions below must share this constant or bounding boxes drift from
// what layers render.
const TileSize = 256

// MapSize returns the total world extent in pixels at the given zoom level.
func MapSize(zoom byte) float64 {
	return float64(uint64(TileSize) << uint(zoom))
}

// LongitudeToPixelX maps a longitude to its world-pixel X coordinate at the
// given zoom level. Longitude maps linearly across the full map width.
func LongitudeToPixelX(longitude float64, zoom byte) float64 {
	return (longitude + 180) / 360 * MapSize(zoom)
}

// LatitudeToPixelY maps a latitude to its world-pixel Y coordinate at the
// given zoom level using the Mercator relation. Only finite for latitudes
// within [LatitudeMin, LatitudeMax].
func LatitudeToPixelY(latitude float64, zoom byte) float64 {
	sinLat := math.Sin(latitude * math.Pi / 180)
	return (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * MapSize(zoom)
}

// PixelXToLongitude is the inverse of LongitudeToPixelX.
func PixelXToLongitude(pixelX float64, zoom byte) float64 {
	return 360 * (pixelX/MapSize(zoom) - 0.5)
}

// PixelYToLatitude is the inverse of LatitudeToPixelY.
func PixelYToLatitude(pixelY float64, zoom byte) float64 {
	y := 0.5 - pixelY/MapSize(zoom)
	return 90 - 360*math.Atan(math.Exp(-y*2*math.Pi))/math.Pi
}

// BoundingBoxFor computes the geographic rectangle visible through a
// viewport of the given pixel size centered on pos. Viewport edges are
// clamped to the world extent before the inverse projection, so the result
// never reaches outside the valid map even near the poles. The returned box
// satisfies min <= max on both axes; exact round-trip equality after
// clamping is not guaranteed.
func BoundingBoxFor(pos MapPosition, width, height int) (BoundingBox, error) {
	if err := validateViewport(pos, width, height); err != nil {
		return BoundingBox{}, err
	}

	pixelX := LongitudeToPixelX(pos.Center.Longitude, pos.Zoom)
	pixelY := LatitudeToPixelY(pos.Center.Latitude, pos.Zoom)
	halfWidth := float64(width) / 2
	halfHeight := float64(height) / 2
	mapSize := MapSize(pos.Zoom)

	pixelXMin := math.Max(0, pixelX-halfWidth)
	pixelYMin := math.Max(0, pixelY-halfHeight)
	pixelXMax := math.Min(mapSize, pixelX+halfWidth)
	pixelYMax := math.Min(mapSize, pixelY+halfHeight)

	return BoundingBox{
		MinLatitude:  PixelYToLatitude(pixelYMax, pos.Zoom),
		MinLongitude: PixelXToLongitude(pixelXMin, pos.Zoom),
		MaxLatitude:  PixelYToLatitude(pixelYMin, pos.Zoom),
		MaxLongitude: PixelXToLongitude(pixelXMax, pos.Zoom),
	}, nil
}

// AnchorFor computes the world-pixel offset of the viewport's top-left
// corner at the zoom level of pos. Layers subtract the anchor from absolute
// world-pixel coordinates to obtain canvas coordinates. Unlike the bounding
// box the anchor is not clamped: near a world edge it may be negative.
func AnchorFor(pos MapPosition, width, height int) (geom.Vec[float64], error) {
	if err := validateViewport(pos, width, height); err != nil {
		return geom.Vec[float64]{}, err
	}
	pixelX := LongitudeToPixelX(pos.Center.Longitude, pos.Zoom) - float64(width)/2
	pixelY := LatitudeToPixelY(pos.Center.Latitude, pos.Zoom) - float64(height)/2
	return geom.NewVec(pixelX, pixelY), nil
}

func validateViewport(pos MapPosition, width, height int) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport size %dx%d", ErrInvalidPosition, width, height)
	}
	return nil
}
