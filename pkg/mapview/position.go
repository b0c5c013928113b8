package mapview

import (
	"math"
	"sync"

	"github.com/kjkrol/gokm/pkg/geo"
)

// ViewPosition is a thread-safe center+zoom store implementing
// PositionProvider. Mutators clamp their input into the projection domain,
// bump a version counter and fire the observer callback, so a scheduler can
// be woken whenever the viewport moves.
type ViewPosition struct {
	mu       sync.RWMutex
	center   geo.GeoPoint
	zoom     byte
	zoomMin  byte
	zoomMax  byte
	version  uint64
	onChange func()
}

func NewViewPosition(center geo.GeoPoint, zoom byte) *ViewPosition {
	v := &ViewPosition{zoomMin: geo.ZoomMin, zoomMax: geo.ZoomMax}
	v.center = clampCenter(center)
	v.zoom = v.clampZoom(zoom)
	return v
}

func (v *ViewPosition) CurrentPosition() geo.MapPosition {
	v.mu.RLock()
	pos := geo.MapPosition{Center: v.center, Zoom: v.zoom}
	v.mu.RUnlock()
	return pos
}

func (v *ViewPosition) Center() geo.GeoPoint {
	v.mu.RLock()
	center := v.center
	v.mu.RUnlock()
	return center
}

func (v *ViewPosition) Zoom() byte {
	v.mu.RLock()
	zoom := v.zoom
	v.mu.RUnlock()
	return zoom
}

// Version increases with every effective change of center or zoom.
func (v *ViewPosition) Version() uint64 {
	v.mu.RLock()
	version := v.version
	v.mu.RUnlock()
	return version
}

// SetObserver registers a callback fired after every effective change.
// The callback runs outside the position lock.
func (v *ViewPosition) SetObserver(fn func()) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// SetZoomLimits narrows the zoom range accepted by mutators. The current
// zoom is re-clamped into the new range.
func (v *ViewPosition) SetZoomLimits(min, max byte) {
	if min > max {
		min, max = max, min
	}
	if max > geo.ZoomMax {
		max = geo.ZoomMax
	}
	v.mu.Lock()
	v.zoomMin = min
	v.zoomMax = max
	changed := v.applyLocked(v.center, v.clampZoom(v.zoom))
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

func (v *ViewPosition) SetCenter(center geo.GeoPoint) {
	v.mu.Lock()
	changed := v.applyLocked(clampCenter(center), v.zoom)
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

func (v *ViewPosition) SetZoom(zoom byte) {
	v.mu.Lock()
	changed := v.applyLocked(v.center, v.clampZoom(zoom))
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

func (v *ViewPosition) ZoomIn() {
	v.mu.Lock()
	zoom := v.zoom
	if zoom < v.zoomMax {
		zoom++
	}
	changed := v.applyLocked(v.center, zoom)
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

func (v *ViewPosition) ZoomOut() {
	v.mu.Lock()
	zoom := v.zoom
	if zoom > v.zoomMin {
		zoom--
	}
	changed := v.applyLocked(v.center, zoom)
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

// MoveBy pans the center by (dx, dy) world pixels at the current zoom.
// The resulting pixel coordinates are clamped to the world extent.
func (v *ViewPosition) MoveBy(dx, dy float64) {
	v.mu.Lock()
	mapSize := geo.MapSize(v.zoom)
	pixelX := clampFloat(geo.LongitudeToPixelX(v.center.Longitude, v.zoom)+dx, 0, mapSize)
	pixelY := clampFloat(geo.LatitudeToPixelY(v.center.Latitude, v.zoom)+dy, 0, mapSize)
	center := geo.GeoPoint{
		Latitude:  geo.PixelYToLatitude(pixelY, v.zoom),
		Longitude: geo.PixelXToLongitude(pixelX, v.zoom),
	}
	changed := v.applyLocked(clampCenter(center), v.zoom)
	fn := v.onChange
	v.mu.Unlock()
	notify(changed, fn)
}

func (v *ViewPosition) applyLocked(center geo.GeoPoint, zoom byte) bool {
	if center == v.center && zoom == v.zoom {
		return false
	}
	v.center = center
	v.zoom = zoom
	v.version++
	return true
}

func (v *ViewPosition) clampZoom(zoom byte) byte {
	if zoom < v.zoomMin {
		return v.zoomMin
	}
	if zoom > v.zoomMax {
		return v.zoomMax
	}
	return zoom
}

func clampCenter(center geo.GeoPoint) geo.GeoPoint {
	if math.IsNaN(center.Latitude) || math.IsInf(center.Latitude, 0) {
		center.Latitude = 0
	}
	if math.IsNaN(center.Longitude) || math.IsInf(center.Longitude, 0) {
		center.Longitude = 0
	}
	center.Latitude = clampFloat(center.Latitude, geo.LatitudeMin, geo.LatitudeMax)
	center.Longitude = clampFloat(center.Longitude, geo.LongitudeMin, geo.LongitudeMax)
	return center
}

func clampFloat(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func notify(changed bool, fn func()) {
	if changed && fn != nil {
		fn()
	}
}
