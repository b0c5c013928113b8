package mapview

import (
	"image/color"
	"time"

	"github.com/kjkrol/gokm/pkg/worker"
)

// DefaultFrameDuration is the target period of one render cycle, bounding
// the redraw frequency at 20 frames per second.
const DefaultFrameDuration = 50 * time.Millisecond

// DrawPolicy decides what happens to the rest of a frame when a layer's
// Draw returns an error.
type DrawPolicy int

const (
	// ContinueFrame logs the failure and draws the remaining layers, so one
	// broken layer cannot blank the whole viewport. This is the default.
	ContinueFrame DrawPolicy = iota
	// AbortFrame stops the draw pass at the first failing layer; the frame
	// is neither finished nor repainted.
	AbortFrame
)

// Option configures a LayerManager during creation.
type Option func(*managerOptions)

type managerOptions struct {
	frameDuration time.Duration
	background    color.Color
	drawPolicy    DrawPolicy
	priority      worker.Priority
}

func defaultManagerOptions() managerOptions {
	return managerOptions{
		frameDuration: DefaultFrameDuration,
		background:    color.White,
		drawPolicy:    ContinueFrame,
		priority:      worker.PriorityNormal,
	}
}

// WithFrameDuration overrides the target frame period. Non-positive values
// keep the default.
func WithFrameDuration(d time.Duration) Option {
	return func(o *managerOptions) {
		if d > 0 {
			o.frameDuration = d
		}
	}
}

// WithBackground sets the color the canvas is cleared to before each draw
// pass.
func WithBackground(c color.Color) Option {
	return func(o *managerOptions) {
		if c != nil {
			o.background = c
		}
	}
}

// WithDrawPolicy sets the per-layer draw failure policy.
func WithDrawPolicy(p DrawPolicy) Option {
	return func(o *managerOptions) {
		o.drawPolicy = p
	}
}

// WithPriority sets the informational priority hint of the scheduler
// worker.
func WithPriority(p worker.Priority) Option {
	return func(o *managerOptions) {
		o.priority = p
	}
}
