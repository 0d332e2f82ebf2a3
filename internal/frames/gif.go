package frames

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

const gifDelayUnit = 10 * time.Millisecond

type gifDecoder struct {
	g      *gif.GIF
	canvas *image.RGBA
	next   int
}

func newGIFDecoder(r io.Reader) (*gifDecoder, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode gif: %w", ErrNoFrames)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
	}
	return &gifDecoder{g: g, canvas: image.NewRGBA(bounds)}, nil
}

func (d *gifDecoder) Len() int { return len(d.g.Image) }

func (d *gifDecoder) Next() (*Frame, error) {
	if d.next >= len(d.g.Image) {
		return nil, io.EOF
	}
	i := d.next
	d.next++

	p := d.g.Image[i]
	disposal := byte(0)
	if i < len(d.g.Disposal) {
		disposal = d.g.Disposal[i]
	}

	var previous *image.RGBA
	if disposal == gif.DisposalPrevious {
		previous = cloneRGBA(d.canvas)
	}
	draw.Draw(d.canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
	out := cloneRGBA(d.canvas)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(d.canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		d.canvas = previous
	}

	delay := time.Duration(0)
	if i < len(d.g.Delay) {
		delay = time.Duration(d.g.Delay[i]) * gifDelayUnit
	}
	return &Frame{Image: out, Delay: delay}, nil
}

type gifEncoder struct {
	w io.Writer
	g gif.GIF
}

func (e *gifEncoder) Push(f *Frame) error {
	if f == nil || f.Image == nil {
		return fmt.Errorf("encode gif: nil frame")
	}
	b := f.Image.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, f.Image, b.Min)

	e.g.Image = append(e.g.Image, p)
	e.g.Delay = append(e.g.Delay, int(f.Delay/gifDelayUnit))
	e.g.Disposal = append(e.g.Disposal, gif.DisposalNone)
	return nil
}

func (e *gifEncoder) Close() error {
	if len(e.g.Image) == 0 {
		return fmt.Errorf("encode gif: %w", ErrNoFrames)
	}
	if err := gif.EncodeAll(e.w, &e.g); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
