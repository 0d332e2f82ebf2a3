// Package dominant picks a readable foreground color from a background image.
package dominant

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

const (
	// sampleSize is the side of the grid the image is reduced to.
	sampleSize = 8
	// brightLimit excludes near-white samples: any channel above it skips the sample.
	brightLimit = 200
	// minValue is the lowest HSV value of the result.
	minValue = 0.7
)

// Fallback is returned when no sample qualifies.
var Fallback = color.NRGBA{A: 0xff}

// Color averages the non-bright pixels of img and lifts the result to a
// minimum brightness. The result is always opaque.
func Color(img image.Image) color.NRGBA {
	if img == nil || img.Bounds().Empty() {
		return Fallback
	}

	small := image.NewNRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	var red, green, blue, n int
	for y := 0; y < sampleSize; y++ {
		for x := 0; x < sampleSize; x++ {
			c := small.NRGBAAt(x, y)
			if c.R > brightLimit || c.G > brightLimit || c.B > brightLimit {
				continue
			}
			red += int(c.R)
			green += int(c.G)
			blue += int(c.B)
			n++
		}
	}
	if n == 0 {
		return Fallback
	}

	avg := colorful.Color{
		R: float64(clamp8(red/n)) / 255,
		G: float64(clamp8(green/n)) / 255,
		B: float64(clamp8(blue/n)) / 255,
	}
	h, s, v := avg.Hsv()
	r, g, b := colorful.Hsv(h, s, math.Max(v, minValue)).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp8(v int) int {
	return max(0, min(0xff, v))
}
