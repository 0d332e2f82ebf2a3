package frames

import (
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

// APNG fcTL operations.
const (
	apngDisposeNone       = 0
	apngDisposeBackground = 1
	apngDisposePrevious   = 2

	apngBlendSource = 0
)

type apngDecoder struct {
	frames []apng.Frame
	canvas *image.RGBA
	next   int
}

func newAPNGDecoder(r io.Reader) (*apngDecoder, error) {
	a, err := apng.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("not an APNG or failed to decode APNG: %w", err)
	}

	var frames []apng.Frame
	for _, fr := range a.Frames {
		if fr.IsDefault {
			continue
		}
		frames = append(frames, fr)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("decode apng: %w", ErrNoFrames)
	}

	bounds := image.Rectangle{}
	for _, fr := range a.Frames {
		bounds = bounds.Union(frameRect(fr))
	}
	return &apngDecoder{frames: frames, canvas: image.NewRGBA(bounds)}, nil
}

func frameRect(fr apng.Frame) image.Rectangle {
	b := fr.Image.Bounds()
	return image.Rect(fr.XOffset, fr.YOffset, fr.XOffset+b.Dx(), fr.YOffset+b.Dy())
}

func (d *apngDecoder) Len() int { return len(d.frames) }

func (d *apngDecoder) Next() (*Frame, error) {
	if d.next >= len(d.frames) {
		return nil, io.EOF
	}
	fr := d.frames[d.next]
	d.next++

	r := frameRect(fr)
	var previous *image.RGBA
	if fr.DisposeOp == apngDisposePrevious {
		previous = cloneRGBA(d.canvas)
	}
	op := draw.Over
	if fr.BlendOp == apngBlendSource {
		op = draw.Src
	}
	draw.Draw(d.canvas, r, fr.Image, fr.Image.Bounds().Min, op)
	out := cloneRGBA(d.canvas)

	switch fr.DisposeOp {
	case apngDisposeBackground:
		draw.Draw(d.canvas, r, image.Transparent, image.Point{}, draw.Src)
	case apngDisposePrevious:
		d.canvas = previous
	}

	return &Frame{Image: out, Delay: apngDelay(fr.DelayNumerator, fr.DelayDenominator)}, nil
}

// apngDelayFraction picks the finest of ms, cs or s that fits the delay in
// 16 bits. Longer delays saturate.
func apngDelayFraction(d time.Duration) (num, den uint16) {
	for _, unit := range []time.Duration{time.Millisecond, 10 * time.Millisecond, time.Second} {
		if n := d / unit; n <= math.MaxUint16 {
			return uint16(max(n, 0)), uint16(time.Second / unit)
		}
	}
	return math.MaxUint16, 1
}

func apngDelay(num, den uint16) time.Duration {
	if den == 0 {
		den = 100
	}
	return time.Duration(num) * time.Second / time.Duration(den)
}

type apngEncoder struct {
	w io.Writer
	a apng.APNG
}

func (e *apngEncoder) Push(f *Frame) error {
	if f == nil || f.Image == nil {
		return fmt.Errorf("encode apng: nil frame")
	}
	num, den := apngDelayFraction(f.Delay)
	e.a.Frames = append(e.a.Frames, apng.Frame{
		Image:            f.Image,
		DelayNumerator:   num,
		DelayDenominator: den,
		DisposeOp:        apngDisposeNone,
		BlendOp:          apngBlendSource,
	})
	return nil
}

func (e *apngEncoder) Close() error {
	if len(e.a.Frames) == 0 {
		return fmt.Errorf("encode apng: %w", ErrNoFrames)
	}
	if err := apng.Encode(e.w, e.a); err != nil {
		return fmt.Errorf("failed to encode animated PNG: %w", err)
	}
	return nil
}
