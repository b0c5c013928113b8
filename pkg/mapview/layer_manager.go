// Package mapview implements the frame scheduler of a layered 2D map
// viewer: a background worker that recomputes the visible geographic region
// on a fixed cadence, drives the draw pass across an ordered layer stack
// and hands the finished canvas to the display collaborator.
package mapview

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kjkrol/gokm/pkg/geo"
	"github.com/kjkrol/gokm/pkg/worker"
)

// LayerManager renders the registered layers into the view's canvas on a
// dedicated worker goroutine. Redraw requests, layer mutation and lifecycle
// calls are safe from any goroutine.
//
// Lifecycle: NewLayerManager -> Start -> (Pause/Resume)* -> Stop. Stop
// closes every still-registered layer exactly once.
type LayerManager struct {
	view     MapView
	position PositionProvider
	layers   *Layers
	opts     managerOptions

	redrawNeeded atomic.Bool
	worker       *worker.Worker
}

func NewLayerManager(view MapView, position PositionProvider, opts ...Option) *LayerManager {
	if view == nil {
		panic("mapview: view is required")
	}
	if position == nil {
		panic("mapview: position provider is required")
	}
	options := defaultManagerOptions()
	for _, opt := range opts {
		opt(&options)
	}
	m := &LayerManager{
		view:     view,
		position: position,
		layers:   NewLayers(),
		opts:     options,
	}
	m.worker = worker.New(m)
	return m
}

// Layers returns the mutable layer collection consumed by the draw pass.
func (m *LayerManager) Layers() *Layers {
	return m.layers
}

// RedrawLayers requests an asynchronous redraw of all layers. Requests
// issued before the scheduler wakes collapse into a single frame; a request
// made while a frame is executing triggers one more frame.
func (m *LayerManager) RedrawLayers() {
	m.redrawNeeded.Store(true)
	m.worker.Wake()
}

// Start spawns the scheduler goroutine. Subsequent calls are no-ops.
func (m *LayerManager) Start() { m.worker.Start() }

// Pause suspends rendering before the next frame; a frame in progress
// completes. Pending redraw requests are kept.
func (m *LayerManager) Pause() { m.worker.Pause() }

// Resume re-enables rendering after a Pause.
func (m *LayerManager) Resume() { m.worker.Resume() }

// Stop shuts the scheduler down and closes every still-registered layer.
// Blocks until the teardown pass has completed. Idempotent.
func (m *LayerManager) Stop() { m.worker.Stop() }

// HasWork implements worker.Runnable.
func (m *LayerManager) HasWork() bool {
	return m.redrawNeeded.Load()
}

// DoWork implements worker.Runnable: it renders one frame and sleeps the
// remainder of the frame budget. The elapsed time covers the whole frame
// body, position fetch and projection included.
func (m *LayerManager) DoWork(ctx context.Context) error {
	start := time.Now()
	m.redrawNeeded.Store(false)

	if canvas := m.view.FrameBuffer().DrawingCanvas(); canvas != nil {
		m.drawFrame(canvas)
	}

	elapsed := time.Since(start)
	if remaining := m.opts.frameDuration - elapsed; remaining > time.Millisecond {
		if ctx.Err() == nil {
			Logger().Debug("sleeping", "duration", remaining)
			worker.Sleep(ctx, remaining)
		}
	} else if elapsed > m.opts.frameDuration {
		Logger().Debug("frame over budget", "elapsed", elapsed, "budget", m.opts.frameDuration)
	}
	return nil
}

// AfterRun implements worker.Runnable: the shutdown teardown pass.
func (m *LayerManager) AfterRun() {
	for _, layer := range m.layers.Snapshot() {
		layer.Close()
	}
}

// Priority implements worker.Runnable.
func (m *LayerManager) Priority() worker.Priority {
	return m.opts.priority
}

func (m *LayerManager) drawFrame(canvas Canvas) {
	pos := m.position.CurrentPosition()
	bounds := canvas.Bounds()

	bbox, err := geo.BoundingBoxFor(pos, bounds.Dx(), bounds.Dy())
	if err != nil {
		Logger().Warn("skipping frame", "err", err)
		return
	}
	anchor, err := geo.AnchorFor(pos, bounds.Dx(), bounds.Dy())
	if err != nil {
		Logger().Warn("skipping frame", "err", err)
		return
	}

	fillCanvas(canvas, m.opts.background)

	for _, layer := range m.layers.Snapshot() {
		if !layer.Visible() {
			continue
		}
		if err := layer.Draw(bbox, pos.Zoom, canvas, anchor); err != nil {
			if m.opts.drawPolicy == AbortFrame {
				Logger().Warn("aborting frame: layer draw failed", "err", err)
				return
			}
			Logger().Warn("layer draw failed", "err", err)
		}
	}

	m.view.FrameBuffer().FrameFinished(pos)
	m.view.Repaint()
}
