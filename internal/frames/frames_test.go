package frames_test

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oza6ut0ne/awesomeqr/internal/frames"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

var testPalette = color.Palette{
	color.RGBA{A: 0xff},
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
}

func paletted(r image.Rectangle, c color.Color) *image.Paletted {
	p := image.NewPaletted(r, testPalette)
	draw.Draw(p, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return p
}

func drain(t *testing.T, d frames.Decoder) []*frames.Frame {
	t.Helper()
	var out []*frames.Frame
	for {
		f, err := d.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, f)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := frames.ParseFormat("GIF")
	require.NoError(t, err)
	assert.Equal(t, frames.FormatGIF, f)

	f, err = frames.FormatFromPath("/tmp/out.png")
	require.NoError(t, err)
	assert.Equal(t, frames.FormatAPNG, f)
	assert.Equal(t, "apng", f.String())

	_, err = frames.ParseFormat("webm")
	assert.ErrorIs(t, err, frames.ErrUnknownFormat)
}

func TestGIFDecoder(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	g := &gif.GIF{
		Image: []*image.Paletted{
			paletted(image.Rect(0, 0, 20, 20), red),
			paletted(image.Rect(5, 5, 10, 10), blue),
			paletted(image.Rect(10, 10, 20, 20), blue),
		},
		Delay:    []int{10, 20, 30},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 20, Height: 20},
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))

	d, err := frames.NewDecoder(frames.FormatGIF, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	got := drain(t, d)
	require.Len(t, got, 3)
	for _, f := range got {
		assert.Equal(t, image.Rect(0, 0, 20, 20), f.Image.Bounds())
	}
	assert.Equal(t, 100*time.Millisecond, got[0].Delay)
	assert.Equal(t, 300*time.Millisecond, got[2].Delay)

	// second frame is composed over the first
	assert.Equal(t, red, got[1].Image.RGBAAt(0, 0))
	assert.Equal(t, blue, got[1].Image.RGBAAt(6, 6))
	// and its area is cleared afterwards
	assert.Equal(t, color.RGBA{}, got[2].Image.RGBAAt(6, 6))
	assert.Equal(t, blue, got[2].Image.RGBAAt(15, 15))

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestGIFEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := frames.NewEncoder(frames.FormatGIF, &buf)
	require.NoError(t, err)

	require.NoError(t, enc.Push(&frames.Frame{Image: solid(16, 16, color.Black), Delay: 50 * time.Millisecond}))
	require.NoError(t, enc.Push(&frames.Frame{Image: solid(16, 16, color.White), Delay: 70 * time.Millisecond}))
	require.NoError(t, enc.Close())

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, 2)
	assert.Equal(t, []int{5, 7}, g.Delay)
}

func TestAPNGRoundTrip(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 0xff, A: 0xff}
	var buf bytes.Buffer
	enc, err := frames.NewEncoder(frames.FormatAPNG, &buf)
	require.NoError(t, err)
	require.NoError(t, enc.Push(&frames.Frame{Image: solid(12, 12, red), Delay: 120 * time.Millisecond}))
	require.NoError(t, enc.Push(&frames.Frame{Image: solid(12, 12, color.White), Delay: 40 * time.Millisecond}))
	require.NoError(t, enc.Close())

	d, err := frames.NewDecoder(frames.FormatAPNG, &buf)
	require.NoError(t, err)
	got := drain(t, d)
	require.Len(t, got, 2)

	assert.Equal(t, 120*time.Millisecond, got[0].Delay)
	assert.Equal(t, 40*time.Millisecond, got[1].Delay)
	assert.Equal(t, red, got[0].Image.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, got[1].Image.RGBAAt(3, 3))
}

func TestAPNGLongDelays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want time.Duration
	}{
		{65 * time.Second, 65 * time.Second},
		{100 * time.Second, 100 * time.Second},
		{123456 * time.Millisecond, 123450 * time.Millisecond},
		{2000 * time.Second, 2000 * time.Second},
		{100000 * time.Second, 65535 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			enc, err := frames.NewEncoder(frames.FormatAPNG, &buf)
			require.NoError(t, err)
			require.NoError(t, enc.Push(&frames.Frame{Image: solid(4, 4, color.White), Delay: tt.in}))
			require.NoError(t, enc.Push(&frames.Frame{Image: solid(4, 4, color.Black), Delay: tt.in}))
			require.NoError(t, enc.Close())

			d, err := frames.NewDecoder(frames.FormatAPNG, &buf)
			require.NoError(t, err)
			for _, f := range drain(t, d) {
				assert.Equal(t, tt.want, f.Delay)
			}
		})
	}
}

func TestEncoderErrors(t *testing.T) {
	t.Parallel()

	_, err := frames.NewEncoder(frames.FormatGIF, nil)
	assert.Error(t, err)

	for _, format := range []frames.Format{frames.FormatGIF, frames.FormatAPNG} {
		enc, err := frames.NewEncoder(format, io.Discard)
		require.NoError(t, err)
		assert.ErrorIs(t, enc.Close(), frames.ErrNoFrames, format.String())
		assert.Error(t, enc.Push(nil))
	}
}

func TestDecoderErrors(t *testing.T) {
	t.Parallel()

	_, err := frames.NewDecoder(frames.FormatGIF, bytes.NewReader([]byte("not a gif")))
	assert.Error(t, err)

	_, err = frames.NewDecoder(frames.FormatAPNG, bytes.NewReader([]byte("not a png")))
	assert.Error(t, err)

	_, err = frames.NewDecoder(frames.Format(9), bytes.NewReader(nil))
	assert.ErrorIs(t, err, frames.ErrUnknownFormat)
}
