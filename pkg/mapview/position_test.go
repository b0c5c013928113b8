package mapview_test

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/kjkrol/gokm/pkg/geo"
	"github.com/kjkrol/gokm/pkg/mapview"
)

func TestViewPositionClampsOnCreate(t *testing.T) {
	v := mapview.NewViewPosition(geo.GeoPoint{Latitude: 90, Longitude: 200}, 30)
	pos := v.CurrentPosition()
	if pos.Center.Latitude != geo.LatitudeMax {
		t.Errorf("latitude = %v, want clamped to %v", pos.Center.Latitude, geo.LatitudeMax)
	}
	if pos.Center.Longitude != geo.LongitudeMax {
		t.Errorf("longitude = %v, want clamped to %v", pos.Center.Longitude, geo.LongitudeMax)
	}
	if pos.Zoom != geo.ZoomMax {
		t.Errorf("zoom = %d, want clamped to %d", pos.Zoom, geo.ZoomMax)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("clamped position should be valid, got %v", err)
	}
}

func TestViewPositionZoomSteps(t *testing.T) {
	v := mapview.NewViewPosition(geo.GeoPoint{}, 0)
	v.SetZoomLimits(2, 4)

	if got := v.Zoom(); got != 2 {
		t.Fatalf("zoom re-clamped to %d, want 2", got)
	}
	v.ZoomOut()
	if got := v.Zoom(); got != 2 {
		t.Errorf("ZoomOut below minimum: zoom = %d, want 2", got)
	}
	v.ZoomIn()
	v.ZoomIn()
	v.ZoomIn() // beyond the maximum, must stick at 4
	if got := v.Zoom(); got != 4 {
		t.Errorf("zoom = %d, want 4", got)
	}
}

func TestViewPositionMoveBy(t *testing.T) {
	v := mapview.NewViewPosition(geo.GeoPoint{Latitude: 0, Longitude: 0}, 8)

	v.MoveBy(geo.MapSize(8)/4, 0) // a quarter of the world eastwards
	center := v.Center()
	if got, want := center.Longitude, 90.0; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("longitude after pan = %v, want ~%v", got, want)
	}
	if math.Abs(center.Latitude) > 1e-9 {
		t.Errorf("latitude changed by horizontal pan: %v", center.Latitude)
	}

	// Panning far north clamps at the projection limit instead of leaving
	// the world.
	v.MoveBy(0, -2*geo.MapSize(8))
	if got := v.Center().Latitude; math.Abs(got-geo.LatitudeMax) > 1e-9 {
		t.Errorf("latitude after clamped pan = %v, want ~%v", got, geo.LatitudeMax)
	}
}

func TestViewPositionObserverAndVersion(t *testing.T) {
	v := mapview.NewViewPosition(geo.GeoPoint{Latitude: 10, Longitude: 10}, 5)
	var notified atomic.Int32
	v.SetObserver(func() { notified.Add(1) })

	before := v.Version()
	v.SetCenter(geo.GeoPoint{Latitude: 20, Longitude: 20})
	if got := notified.Load(); got != 1 {
		t.Fatalf("observer fired %d times, want 1", got)
	}
	if v.Version() == before {
		t.Error("version did not change on SetCenter")
	}

	// No-op mutation: no notification, no version bump.
	version := v.Version()
	v.SetCenter(geo.GeoPoint{Latitude: 20, Longitude: 20})
	v.SetZoom(5)
	if got := notified.Load(); got != 1 {
		t.Errorf("observer fired %d times after no-op mutations, want 1", got)
	}
	if v.Version() != version {
		t.Error("version changed on no-op mutation")
	}
}
