package awesomeqr

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/oza6ut0ne/awesomeqr/internal/canvas"
	"github.com/oza6ut0ne/awesomeqr/internal/geom"
)

// blend places panel, rendered from the clip region of fallback, back into
// a copy of fallback. When the clip region is square and larger than size,
// the copy is shrunk so the clip region becomes exactly size wide and the
// panel keeps its rendered resolution.
func blend(fallback image.Image, panel *image.RGBA, clip *image.Rectangle, size int) *image.RGBA {
	full, placement := geom.ScaleBoundingRectByClippingRect(fallback.Bounds().Size(), size, clip)

	out := canvas.Scale(fallback, full.Dx(), full.Dy())
	canvas.DrawScaled(out, placement, panel, draw.Over)
	return out
}
