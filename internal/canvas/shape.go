package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points to approximate a quarter circle.
const kappa = 0.5522847498

// CircleMask returns a size×size coverage mask holding an anti-aliased
// circle of the given diameter centered in the square.
func CircleMask(size int, diameter float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 || diameter <= 0 {
		return mask
	}
	c := float64(size) / 2
	r := diameter / 2

	z := vector.NewRasterizer(size, size)
	z.MoveTo(f32(c+r), f32(c))
	z.CubeTo(f32(c+r), f32(c+r*kappa), f32(c+r*kappa), f32(c+r), f32(c), f32(c+r))
	z.CubeTo(f32(c-r*kappa), f32(c+r), f32(c-r), f32(c+r*kappa), f32(c-r), f32(c))
	z.CubeTo(f32(c-r), f32(c-r*kappa), f32(c-r*kappa), f32(c-r), f32(c), f32(c-r))
	z.CubeTo(f32(c+r*kappa), f32(c-r), f32(c+r), f32(c-r*kappa), f32(c+r), f32(c))
	z.ClosePath()
	rasterize(z, mask)
	return mask
}

// RoundRectMask returns a w×h coverage mask of a rectangle filling the mask
// with corners of the given radius.
func RoundRectMask(w, h int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	roundRectPath(z, 0, 0, float64(w), float64(h), radius, false)
	rasterize(z, mask)
	return mask
}

// RoundRectRingMask returns a w×h mask of a rounded-rectangle outline of the
// given width lying inside the mask edges.
func RoundRectRingMask(w, h int, radius, width float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || width <= 0 {
		return mask
	}
	fw, fh := float64(w), float64(h)
	z := vector.NewRasterizer(w, h)
	roundRectPath(z, 0, 0, fw, fh, radius, false)
	if 2*width < min(fw, fh) {
		roundRectPath(z, width, width, fw-width, fh-width, max(radius-width, 0), true)
	}
	rasterize(z, mask)
	return mask
}

// ClipRoundRect returns a copy of src with everything outside a rounded
// rectangle of the given radius made transparent.
func ClipRoundRect(src image.Image, radius float64) *image.RGBA {
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy())
	mask := RoundRectMask(b.Dx(), b.Dy(), radius)
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mask, image.Point{}, draw.Src)
	return dst
}

// StrokeRoundRect draws a rounded-rectangle outline of the given width along
// the inside of r.
func StrokeRoundRect(dst draw.Image, r image.Rectangle, radius, width float64, c color.Color) {
	FillMask(dst, r, RoundRectRingMask(r.Dx(), r.Dy(), radius, width), c)
}

// roundRectPath adds a closed rounded rectangle to z. Reversed paths wind the
// other way so they cut holes into forward ones.
func roundRectPath(z *vector.Rasterizer, x0, y0, x1, y1, r float64, reverse bool) {
	r = max(0, min(r, (x1-x0)/2, (y1-y0)/2))
	k := r * (1 - kappa)

	z.MoveTo(f32(x0+r), f32(y0))
	if !reverse {
		z.LineTo(f32(x1-r), f32(y0))
		z.CubeTo(f32(x1-k), f32(y0), f32(x1), f32(y0+k), f32(x1), f32(y0+r))
		z.LineTo(f32(x1), f32(y1-r))
		z.CubeTo(f32(x1), f32(y1-k), f32(x1-k), f32(y1), f32(x1-r), f32(y1))
		z.LineTo(f32(x0+r), f32(y1))
		z.CubeTo(f32(x0+k), f32(y1), f32(x0), f32(y1-k), f32(x0), f32(y1-r))
		z.LineTo(f32(x0), f32(y0+r))
		z.CubeTo(f32(x0), f32(y0+k), f32(x0+k), f32(y0), f32(x0+r), f32(y0))
	} else {
		z.CubeTo(f32(x0+k), f32(y0), f32(x0), f32(y0+k), f32(x0), f32(y0+r))
		z.LineTo(f32(x0), f32(y1-r))
		z.CubeTo(f32(x0), f32(y1-k), f32(x0+k), f32(y1), f32(x0+r), f32(y1))
		z.LineTo(f32(x1-r), f32(y1))
		z.CubeTo(f32(x1-k), f32(y1), f32(x1), f32(y1-k), f32(x1), f32(y1-r))
		z.LineTo(f32(x1), f32(y0+r))
		z.CubeTo(f32(x1), f32(y0+k), f32(x1-k), f32(y0), f32(x1-r), f32(y0))
	}
	z.ClosePath()
}

func rasterize(z *vector.Rasterizer, mask *image.Alpha) {
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
}

func f32(v float64) float32 { return float32(v) }
