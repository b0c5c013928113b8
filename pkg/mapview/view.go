package mapview

import (
	"sync"

	"github.com/kjkrol/gokm/pkg/geo"
)

// PositionProvider supplies the viewport state read at the start of every
// frame. CurrentPosition must be cheap, non-blocking and safe for a read
// concurrent with mutation from other goroutines.
type PositionProvider interface {
	CurrentPosition() geo.MapPosition
}

// FrameBuffer hands out the canvas a frame is composed into.
type FrameBuffer interface {
	// DrawingCanvas returns nil while the buffer is not yet allocated;
	// the scheduler then skips the frame but keeps its timing.
	DrawingCanvas() Canvas

	// FrameFinished publishes the canvas drawn for pos.
	FrameFinished(pos geo.MapPosition)
}

// MapView is the display surface collaborator the scheduler renders for.
type MapView interface {
	FrameBuffer() FrameBuffer
	Repaint()
}

// BufferedView is a minimal single-buffer MapView backed by an RGBA canvas.
// It serves headless use: Repaint invokes the configured callback with the
// canvas instead of driving a window system. Double buffering is up to real
// display integrations.
type BufferedView struct {
	mu        sync.Mutex
	canvas    Canvas
	lastPos   geo.MapPosition
	hasFrame  bool
	onRepaint func(Canvas)
}

// NewBufferedView creates a view with a width x height RGBA canvas.
// onRepaint may be nil.
func NewBufferedView(width, height int, onRepaint func(Canvas)) *BufferedView {
	v := &BufferedView{onRepaint: onRepaint}
	if width > 0 && height > 0 {
		v.canvas = NewRGBACanvas(width, height)
	}
	return v
}

func (v *BufferedView) FrameBuffer() FrameBuffer { return v }

func (v *BufferedView) DrawingCanvas() Canvas {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canvas
}

func (v *BufferedView) FrameFinished(pos geo.MapPosition) {
	v.mu.Lock()
	v.lastPos = pos
	v.hasFrame = true
	v.mu.Unlock()
}

func (v *BufferedView) Repaint() {
	v.mu.Lock()
	canvas := v.canvas
	fn := v.onRepaint
	v.mu.Unlock()
	if fn != nil && canvas != nil {
		fn(canvas)
	}
}

// LastPosition returns the position of the most recently finished frame.
func (v *BufferedView) LastPosition() (geo.MapPosition, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastPos, v.hasFrame
}
