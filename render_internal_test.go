package awesomeqr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oza6ut0ne/awesomeqr/internal/canvas"
	"github.com/oza6ut0ne/awesomeqr/internal/classify"
)

func testRenderer(t *testing.T, rounded bool) *renderer {
	t.Helper()
	opt := DefaultRenderOption("HELLO")
	opt.Size = 256
	opt.BorderWidth = 8
	opt.RoundedPatterns = rounded
	r, err := newRenderer(opt)
	require.NoError(t, err)
	return r
}

func findTag(t *testing.T, m classify.Matrix, tag classify.Tag) image.Point {
	t.Helper()
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.At(x, y) == tag {
				return image.Pt(x, y)
			}
		}
	}
	t.Fatalf("no %v module", tag)
	return image.Point{}
}

func TestRendererGeometry(t *testing.T) {
	t.Parallel()

	r := testRenderer(t, false)
	assert.Equal(t, 21, r.matrix.Size())
	assert.Equal(t, 11, r.moduleSize)
	assert.Equal(t, 231, r.unscaledInner)
	assert.Equal(t, 247, r.unscaledFull)
}

func TestRendererModuleSizeFloor(t *testing.T) {
	t.Parallel()

	opt := DefaultRenderOption("HELLO")
	opt.Size = 12
	opt.BorderWidth = 1
	r, err := newRenderer(opt)
	require.NoError(t, err)
	assert.Equal(t, 1, r.moduleSize)
}

func TestRoundedKeepsClassification(t *testing.T) {
	t.Parallel()

	square := testRenderer(t, false)
	rounded := testRenderer(t, true)
	assert.Equal(t, square.matrix, rounded.matrix)
}

func TestDrawModules(t *testing.T) {
	t.Parallel()

	pal := palette{light: color.White, dark: color.Black, background: color.White}
	cellOrigin := func(r *renderer, p image.Point) image.Point {
		return image.Pt(r.opt.BorderWidth+p.X*r.moduleSize, r.opt.BorderWidth+p.Y*r.moduleSize)
	}

	t.Run("square data modules fill the cell", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, false)
		dst := canvas.New(r.unscaledFull, r.unscaledFull)
		r.drawModules(dst, pal)

		o := cellOrigin(r, findTag(t, r.matrix, classify.Data))
		assert.Equal(t, color.RGBA{A: 0xff}, dst.RGBAAt(o.X, o.Y))
		assert.Equal(t, color.RGBA{A: 0xff}, dst.RGBAAt(o.X+5, o.Y+5))
	})

	t.Run("rounded data modules are dots", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, true)
		dst := canvas.New(r.unscaledFull, r.unscaledFull)
		r.drawModules(dst, pal)

		o := cellOrigin(r, findTag(t, r.matrix, classify.Data))
		assert.Equal(t, color.RGBA{}, dst.RGBAAt(o.X, o.Y))
		assert.Equal(t, color.RGBA{A: 0xff}, dst.RGBAAt(o.X+5, o.Y+5))
	})

	t.Run("rounded mode keeps structural modules square", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, true)
		dst := canvas.New(r.unscaledFull, r.unscaledFull)
		r.drawModules(dst, pal)

		o := cellOrigin(r, image.Pt(0, 0))
		require.Equal(t, classify.Position, r.matrix.At(0, 0))
		assert.Equal(t, color.RGBA{A: 0xff}, dst.RGBAAt(o.X, o.Y))
	})

	t.Run("protector modules are translucent white", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, false)
		dst := canvas.New(r.unscaledFull, r.unscaledFull)
		r.drawModules(dst, pal)

		o := cellOrigin(r, findTag(t, r.matrix, classify.Protector))
		got := dst.RGBAAt(o.X+5, o.Y+5)
		assert.Equal(t, uint8(120), got.A)
		assert.Equal(t, got.A, got.R)
	})
}

func TestPalette(t *testing.T) {
	t.Parallel()

	t.Run("auto color needs a background", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, false)
		r.opt.Color.Auto = true
		p := r.palette(nil)
		assert.Equal(t, color.Black, p.dark)
	})

	t.Run("auto color from background", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, false)
		r.opt.Color.Auto = true
		r.opt.Color.Light = color.Black

		bg := canvas.New(16, 16)
		canvas.Fill(bg, bg.Bounds(), color.RGBA{R: 200, A: 0xff})
		p := r.palette(bg)

		assert.Equal(t, color.White, p.light)
		dark := color.NRGBAModel.Convert(p.dark).(color.NRGBA)
		assert.InDelta(t, 200, int(dark.R), 1)
		assert.Zero(t, dark.G)
		assert.Zero(t, dark.B)
		assert.Equal(t, color.Black, r.opt.Color.Light)
	})

	t.Run("nil colors fall back", func(t *testing.T) {
		t.Parallel()
		r := testRenderer(t, false)
		r.opt.Color = Color{}
		p := r.palette(nil)
		assert.Equal(t, color.White, p.light)
		assert.Equal(t, color.Black, p.dark)
		assert.Equal(t, color.White, p.background)
	})
}
