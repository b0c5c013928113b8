package main

import (
	"image/color"

	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/gokm/pkg/geo"
	"github.com/kjkrol/gokm/pkg/mapview"
)

// GraticuleLayer draws latitude/longitude lines every stepDegrees.
type GraticuleLayer struct {
	Step  float64
	Color color.Color
}

func (l *GraticuleLayer) Visible() bool { return true }

func (l *GraticuleLayer) Draw(bbox geo.BoundingBox, zoom byte, canvas mapview.Canvas, anchor geom.Vec[float64]) error {
	bounds := canvas.Bounds()
	step := l.Step
	if step <= 0 {
		step = 10
	}

	for lon := -180.0; lon <= 180.0; lon += step {
		if lon < bbox.MinLongitude || lon > bbox.MaxLongitude {
			continue
		}
		x := int(geo.LongitudeToPixelX(lon, zoom) - anchor.X)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			canvas.Set(x, y, l.Color)
		}
	}
	for lat := -80.0; lat <= 80.0; lat += step {
		if lat < bbox.MinLatitude || lat > bbox.MaxLatitude {
			continue
		}
		y := int(geo.LatitudeToPixelY(lat, zoom) - anchor.Y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			canvas.Set(x, y, l.Color)
		}
	}
	return nil
}

func (l *GraticuleLayer) Close() {}

// Marker is a named point of interest.
type Marker struct {
	Name     string
	Position geo.GeoPoint
	Color    color.Color
}

// MarkerLayer draws small squares for every marker inside the bounding box.
type MarkerLayer struct {
	Markers []Marker
	Size    int
}

func (l *MarkerLayer) Visible() bool { return true }

func (l *MarkerLayer) Draw(bbox geo.BoundingBox, zoom byte, canvas mapview.Canvas, anchor geom.Vec[float64]) error {
	size := l.Size
	if size <= 0 {
		size = 5
	}
	half := size / 2

	for _, marker := range l.Markers {
		if !bbox.Contains(marker.Position) {
			continue
		}
		cx := int(geo.LongitudeToPixelX(marker.Position.Longitude, zoom) - anchor.X)
		cy := int(geo.LatitudeToPixelY(marker.Position.Latitude, zoom) - anchor.Y)
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				canvas.Set(cx+dx, cy+dy, marker.Color)
			}
		}
	}
	return nil
}

func (l *MarkerLayer) Close() {}
