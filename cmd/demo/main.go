package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/image/colornames"

	"github.com/kjkrol/gokm/pkg/geo"
	"github.com/kjkrol/gokm/pkg/mapview"
)

func main() {
	mapview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	var repaints atomic.Int32
	view := mapview.NewBufferedView(512, 512, func(mapview.Canvas) {
		repaints.Add(1)
	})

	position := mapview.NewViewPosition(geo.GeoPoint{Latitude: 52.2297, Longitude: 21.0122}, 5)
	position.SetZoomLimits(2, 12)

	manager := mapview.NewLayerManager(view, position,
		mapview.WithBackground(colornames.Aliceblue),
		mapview.WithFrameDuration(30*time.Millisecond),
	)
	position.SetObserver(manager.RedrawLayers)

	manager.Layers().Add(&GraticuleLayer{Step: 5, Color: colornames.Lightsteelblue})
	manager.Layers().Add(&MarkerLayer{
		Markers: []Marker{
			{Name: "Warszawa", Position: geo.GeoPoint{Latitude: 52.2297, Longitude: 21.0122}, Color: colornames.Crimson},
			{Name: "Kraków", Position: geo.GeoPoint{Latitude: 50.0647, Longitude: 19.9450}, Color: colornames.Darkorange},
			{Name: "Gdańsk", Position: geo.GeoPoint{Latitude: 54.3520, Longitude: 18.6466}, Color: colornames.Seagreen},
		},
	})

	manager.Start()
	defer manager.Stop()

	manager.RedrawLayers()

	// Scripted pan and zoom: every change wakes the scheduler through the
	// position observer.
	for i := 0; i < 20; i++ {
		position.MoveBy(24, -12)
		time.Sleep(40 * time.Millisecond)
	}
	position.ZoomIn()
	time.Sleep(100 * time.Millisecond)

	if pos, ok := view.LastPosition(); ok {
		fmt.Printf("last frame at (%.4f, %.4f) zoom %d\n",
			pos.Center.Latitude, pos.Center.Longitude, pos.Zoom)
	}
	fmt.Printf("repaints: %d\n", repaints.Load())

	if err := writePNG(view, "map.png"); err != nil {
		panic(err)
	}
	fmt.Println("wrote map.png")
}

func writePNG(view *mapview.BufferedView, path string) error {
	canvas := view.DrawingCanvas()
	if canvas == nil || canvas.RGBA() == nil {
		return fmt.Errorf("no canvas to export")
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, canvas.RGBA())
}
