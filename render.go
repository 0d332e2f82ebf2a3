// Package awesomeqr renders QR codes as styled images: rounded or square
// modules, custom colors, a centered logo and still, blended or animated
// backgrounds.
//
// A render encodes the content once, tags every module with its role
// (finder, alignment, timing, protector or data) and paints the tagged grid
// on an unscaled canvas whose module edges fall on whole pixels. The canvas
// is then scaled to the requested size.
//
//	opt := awesomeqr.DefaultRenderOption("https://example.com")
//	opt.RoundedPatterns = true
//	res, err := awesomeqr.Render(opt)
//	if err != nil {
//		log.Fatal(err)
//	}
//	png.Encode(f, res.Image)
package awesomeqr

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/oza6ut0ne/awesomeqr/internal/canvas"
	"github.com/oza6ut0ne/awesomeqr/internal/classify"
	"github.com/oza6ut0ne/awesomeqr/internal/dominant"
	"github.com/oza6ut0ne/awesomeqr/internal/symbol"
)

// protectorColor keeps finder margins readable over background art.
var protectorColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 120}

// Render produces the image described by opt. Configuration problems are
// reported as ErrInvalidConfig before anything is encoded or drawn.
func Render(opt RenderOption) (*RenderResult, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := opt.logger()

	r, err := newRenderer(opt)
	if err != nil {
		log.Debug("encoding failed", zap.Error(err))
		return nil, err
	}

	var res *RenderResult
	switch bg := opt.Background.(type) {
	case *AnimatedBackground:
		res, err = r.animate(bg)
	case *BlendBackground:
		panel := r.frame(clip(bg.Image, bg))
		res = &RenderResult{Image: blend(bg.Image, panel, bg.clipping(), opt.Size), Type: OutputBlend}
	case *StillBackground:
		res = &RenderResult{Image: r.frame(clip(bg.Image, bg)), Type: OutputStill}
	default:
		res = &RenderResult{Image: r.frame(nil), Type: OutputStill}
	}
	if err != nil {
		log.Debug("render failed", zap.Error(err))
		return nil, err
	}

	log.Debug("render complete",
		zap.Stringer("type", res.Type),
		zap.Int("width", res.Image.Bounds().Dx()),
		zap.Int("height", res.Image.Bounds().Dy()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// clip cuts the clipping rect of bg out of img, or returns img unchanged.
func clip(img image.Image, bg Background) image.Image {
	r := bg.clipping()
	if r == nil {
		return img
	}
	return canvas.Crop(img, *r)
}

// renderer holds what stays the same for every frame of one render call.
type renderer struct {
	opt    RenderOption
	matrix classify.Matrix
	log    *zap.Logger

	moduleSize    int
	unscaledInner int
	unscaledFull  int
}

func newRenderer(opt RenderOption) (*renderer, error) {
	sym, err := symbol.Encode(opt.Content, opt.ECL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	matrix := classify.Classify(sym.Bits, sym.AlignmentCenters)

	n := matrix.Size()
	inner := opt.Size - 2*opt.BorderWidth
	moduleSize := max(1, int(math.Round(float64(inner)/float64(n))))

	r := &renderer{
		opt:           opt,
		matrix:        matrix,
		log:           opt.logger(),
		moduleSize:    moduleSize,
		unscaledInner: moduleSize * n,
	}
	r.unscaledFull = r.unscaledInner + 2*opt.BorderWidth

	r.log.Debug("symbol encoded",
		zap.Int("version", sym.Version),
		zap.Stringer("ecl", sym.Level),
		zap.Int("modules", n),
		zap.Int("module_size", moduleSize),
	)
	return r, nil
}

type palette struct {
	light, dark, background color.Color
}

func (r *renderer) palette(bg image.Image) palette {
	c := r.opt.Color
	p := palette{light: c.Light, dark: c.Dark, background: c.Background}
	if c.Auto && bg != nil {
		p.light = color.White
		p.dark = dominant.Color(bg)
	}
	if p.light == nil {
		p.light = color.White
	}
	if p.dark == nil {
		p.dark = color.Black
	}
	if p.background == nil {
		p.background = color.White
	}
	return p
}

// frame renders one image of the configured size over bg, which may be nil.
func (r *renderer) frame(bg image.Image) *image.RGBA {
	opt := r.opt
	border := opt.BorderWidth
	full := r.unscaledFull

	fill := image.Rect(0, 0, full, full)
	if opt.ClearBorder {
		fill = fill.Inset(border)
	}

	dst := canvas.New(full, full)
	canvas.Fill(dst, dst.Bounds(), color.White)

	pal := r.palette(bg)
	canvas.Fill(dst, fill, pal.background)
	if bg != nil && opt.Background != nil {
		canvas.DrawAlpha(dst, fill, bg, opt.Background.alpha())
	}

	r.drawModules(dst, pal)
	if opt.Logo != nil && opt.Logo.Image != nil {
		r.drawLogo(dst, pal)
	}

	out := canvas.Scale(dst, opt.Size, opt.Size)
	if b, ok := opt.Background.(*BlendBackground); ok {
		out = canvas.ClipRoundRect(out, float64(b.BorderRadius))
	}
	return out
}

func (r *renderer) drawModules(dst *image.RGBA, pal palette) {
	size := r.moduleSize
	border := r.opt.BorderWidth
	rounded := r.opt.RoundedPatterns

	var dot *image.Alpha
	if rounded {
		dot = canvas.CircleMask(size, r.opt.PatternScale*float64(size))
	}

	n := r.matrix.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			px, py := border+x*size, border+y*size
			cell := image.Rect(px, py, px+size, py+size)

			switch tag := r.matrix.At(x, y); {
			case tag.Structural():
				canvas.Fill(dst, cell, pal.dark)
			case tag == classify.Protector:
				canvas.Fill(dst, cell, protectorColor)
			default:
				c := pal.light
				if tag == classify.Data {
					c = pal.dark
				}
				if rounded {
					canvas.FillMask(dst, cell, dot, c)
				} else {
					canvas.Fill(dst, cell, c)
				}
			}
		}
	}
}

func (r *renderer) drawLogo(dst *image.RGBA, pal palette) {
	logo := r.opt.Logo
	side := int(float64(r.unscaledInner) * logo.Scale)
	if side <= 0 {
		return
	}
	radius := float64(logo.BorderRadius)

	img := canvas.ClipRoundRect(canvas.Resize(logo.Image, side, side), radius)
	// the stroke is centered on the edge, so half of it lies inside the logo
	canvas.StrokeRoundRect(img, img.Bounds(), radius, float64(logo.BorderWidth)/2, pal.light)

	b := dst.Bounds()
	at := image.Pt((b.Dx()-side)/2, (b.Dy()-side)/2)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}, img, image.Point{}, draw.Over)
}
