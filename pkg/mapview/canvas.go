package mapview

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas is the drawable target handed to layers during a frame. The
// interface is kept narrow so alternative pixel backends can plug in; RGBA
// may return nil when the backing store is not an *image.RGBA.
type Canvas interface {
	ColorModel() color.Model
	Bounds() image.Rectangle
	At(x, y int) color.Color
	Set(x, y int, c color.Color)
	RGBA() *image.RGBA
}

// NewRGBACanvas creates a Canvas backed by a fresh image.RGBA.
func NewRGBACanvas(width, height int) Canvas {
	return &rgbaCanvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// WrapRGBACanvas exposes an existing *image.RGBA as a Canvas.
func WrapRGBACanvas(img *image.RGBA) Canvas {
	if img == nil {
		return nil
	}
	return &rgbaCanvas{img: img}
}

type rgbaCanvas struct {
	img *image.RGBA
}

func (c *rgbaCanvas) ColorModel() color.Model { return c.img.ColorModel() }

func (c *rgbaCanvas) Bounds() image.Rectangle { return c.img.Bounds() }

func (c *rgbaCanvas) At(x, y int) color.Color { return c.img.At(x, y) }

func (c *rgbaCanvas) Set(x, y int, col color.Color) { c.img.Set(x, y, col) }

func (c *rgbaCanvas) RGBA() *image.RGBA { return c.img }

func fillCanvas(c Canvas, col color.Color) {
	if img := c.RGBA(); img != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
		return
	}
	bounds := c.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c.Set(x, y, col)
		}
	}
}
