package mapview

import (
	"sync"

	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/gokm/pkg/geo"
)

// Layer is an independently drawable contributor to the composited map
// image. Implementations must be comparable (use pointer receivers) so they
// can be removed from a Layers collection by identity.
type Layer interface {
	// Visible reports whether the layer takes part in the draw pass.
	Visible() bool

	// Draw renders the part of the layer covered by bbox onto canvas.
	// anchor is the world-pixel offset of the canvas's top-left corner at
	// the given zoom level; subtracting it from absolute world-pixel
	// coordinates yields canvas coordinates. Draw is always called from the
	// scheduler goroutine.
	Draw(bbox geo.BoundingBox, zoom byte, canvas Canvas, anchor geom.Vec[float64]) error

	// Close releases layer resources. The scheduler calls Close exactly
	// once at shutdown on every layer still registered at that moment.
	Close()
}

// Layers is an ordered copy-on-write collection of layers. Insertion order
// is painter's order: the first added layer draws first (bottom). Duplicates
// are allowed. Mutation clones the backing slice, so snapshots taken by a
// draw pass are never affected by concurrent Add or Remove.
type Layers struct {
	mu    sync.Mutex
	items []Layer // replaced on mutation, never modified in place
}

func NewLayers() *Layers {
	return &Layers{}
}

// Add appends a layer on top of the stack. Takes effect for the next
// snapshot. Nil layers are ignored.
func (l *Layers) Add(layer Layer) {
	if layer == nil {
		return
	}
	l.mu.Lock()
	items := make([]Layer, len(l.items)+1)
	copy(items, l.items)
	items[len(items)-1] = layer
	l.items = items
	l.mu.Unlock()
}

// Remove deletes the first occurrence of layer, comparing by identity.
// It reports whether a layer was removed.
func (l *Layers) Remove(layer Layer) bool {
	if layer == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.items {
		if existing == layer {
			items := make([]Layer, 0, len(l.items)-1)
			items = append(items, l.items[:i]...)
			items = append(items, l.items[i+1:]...)
			l.items = items
			return true
		}
	}
	return false
}

// Snapshot returns the current ordered layer sequence. The returned slice
// is the immutable backing array; callers iterate it freely but must not
// modify it.
func (l *Layers) Snapshot() []Layer {
	l.mu.Lock()
	items := l.items
	l.mu.Unlock()
	return items
}

// Size returns the number of registered layers.
func (l *Layers) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
