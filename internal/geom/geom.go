// Package geom holds the rectangle helpers used to lay out blended output.
package geom

import (
	"image"
	"math"
)

// RectF is a rectangle with float coordinates. Max is exclusive, like image.Rectangle.
type RectF struct {
	MinX, MinY, MaxX, MaxY float64
}

// FromRect converts an integer rectangle.
func FromRect(r image.Rectangle) RectF {
	return RectF{
		MinX: float64(r.Min.X),
		MinY: float64(r.Min.Y),
		MaxX: float64(r.Max.X),
		MaxY: float64(r.Max.Y),
	}
}

// Dx returns the width.
func (r RectF) Dx() float64 { return r.MaxX - r.MinX }

// Dy returns the height.
func (r RectF) Dy() float64 { return r.MaxY - r.MinY }

// Scale multiplies every coordinate by ratio.
func (r RectF) Scale(ratio float64) RectF {
	return RectF{
		MinX: r.MinX * ratio,
		MinY: r.MinY * ratio,
		MaxX: r.MaxX * ratio,
		MaxY: r.MaxY * ratio,
	}
}

// Round rounds each edge half-up to the nearest integer.
func (r RectF) Round() image.Rectangle {
	return image.Rect(roundHalfUp(r.MinX), roundHalfUp(r.MinY), roundHalfUp(r.MaxX), roundHalfUp(r.MaxY))
}

// ScaleRect scales an integer rectangle and rounds the result.
func ScaleRect(r image.Rectangle, ratio float64) image.Rectangle {
	return FromRect(r).Scale(ratio).Round()
}

// ScaleBoundingRectByClippingRect works out where a size×size panel cut from
// clip lands once the whole image is rescaled so that clip is exactly size
// wide. It returns the bounds of the rescaled image and the placement of the
// panel inside it.
//
// Rescaling happens only for a square clip wider than size. Otherwise the
// image keeps its own bounds and the placement is the clip itself. A nil clip
// stands for the whole image.
func ScaleBoundingRectByClippingRect(imageSize image.Point, size int, clip *image.Rectangle) (full, placement image.Rectangle) {
	bounds := image.Rectangle{Max: imageSize}
	if clip == nil {
		return ScaleBoundingRectByClippingRect(imageSize, size, &bounds)
	}
	if clip.Dx() != clip.Dy() || clip.Dx() <= size {
		return bounds, *clip
	}
	ratio := float64(size) / float64(clip.Dx())
	return ScaleRect(bounds, ratio), ScaleRect(*clip, ratio)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
