// Package canvas has the pixel-buffer primitives the renderer composes with.
// Every function either draws into a caller-owned *image.RGBA or returns a
// fresh buffer; nothing is cached between calls.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// New returns a transparent w×h canvas.
func New(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Fill paints r with c using source-over compositing.
func Fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// FillMask paints c through mask, with the mask origin at r.Min.
func FillMask(dst draw.Image, r image.Rectangle, mask image.Image, c color.Color) {
	draw.DrawMask(dst, r, &image.Uniform{C: c}, image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// DrawScaled resamples src into dr of dst.
func DrawScaled(dst draw.Image, dr image.Rectangle, src image.Image, op draw.Op) {
	draw.BiLinear.Scale(dst, dr, src, src.Bounds(), op, nil)
}

// DrawAlpha resamples src into dr of dst at the given opacity (0..1).
func DrawAlpha(dst draw.Image, dr image.Rectangle, src image.Image, alpha float64) {
	if dr.Empty() || src.Bounds().Empty() || alpha <= 0 {
		return
	}
	scaled := New(dr.Dx(), dr.Dy())
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	if alpha >= 1 {
		draw.Draw(dst, dr, scaled, image.Point{}, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(255 * alpha))})
	draw.DrawMask(dst, dr, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

// Scale returns a w×h copy of src.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := New(w, h)
	DrawScaled(dst, dst.Bounds(), src, draw.Src)
	return dst
}

// Resize returns a w×h Lanczos-resampled copy of src, used for logos where
// downscaling quality matters.
func Resize(src image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(src, w, h, imaging.Lanczos)
}

// Crop cuts r out of img. The result starts at the origin.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	b := img.Bounds()
	return imaging.Crop(img, r.Add(b.Min))
}

// Clone copies img into a new RGBA buffer starting at the origin.
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := New(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
