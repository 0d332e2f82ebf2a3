package awesomeqr

import (
	"image"
	"image/color"
	"io"

	"go.uber.org/zap"

	"github.com/oza6ut0ne/awesomeqr/internal/frames"
	"github.com/oza6ut0ne/awesomeqr/internal/symbol"
)

// ErrorCorrectionLevel is the QR error-correction level.
type ErrorCorrectionLevel = symbol.Level

const (
	ECLevelL = symbol.LevelL
	ECLevelM = symbol.LevelM
	ECLevelQ = symbol.LevelQ
	ECLevelH = symbol.LevelH
)

// ParseErrorCorrectionLevel accepts L, M, Q or H.
func ParseErrorCorrectionLevel(s string) (ErrorCorrectionLevel, error) {
	return symbol.ParseLevel(s)
}

// AnimationFormat is the container of an animated background and of the
// animated output.
type AnimationFormat = frames.Format

const (
	AnimationGIF  = frames.FormatGIF
	AnimationAPNG = frames.FormatAPNG
)

// Defaults applied by DefaultRenderOption and the background and logo constructors.
const (
	DefaultSize             = 800
	DefaultBorderWidth      = 20
	DefaultPatternScale     = 0.4
	DefaultBackgroundAlpha  = 0.6
	DefaultBlendRadius      = 10
	DefaultLogoScale        = 0.2
	DefaultLogoBorderWidth  = 10
	DefaultLogoBorderRadius = 8
)

// RenderOption describes one render. Rendering never modifies it.
type RenderOption struct {
	Content string
	// Size is the side of the output image in pixels.
	Size int
	// BorderWidth is the margin around the modules, in output pixels.
	BorderWidth int
	ECL         ErrorCorrectionLevel
	// PatternScale is the diameter of rounded data modules relative to the
	// module size, in (0, 1].
	PatternScale    float64
	RoundedPatterns bool
	// ClearBorder keeps the border out of the background fill and image.
	ClearBorder bool
	Color       Color
	Logo        *Logo
	Background  Background

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultRenderOption returns the default option set for content.
func DefaultRenderOption(content string) RenderOption {
	return RenderOption{
		Content:      content,
		Size:         DefaultSize,
		BorderWidth:  DefaultBorderWidth,
		ECL:          ECLevelM,
		PatternScale: DefaultPatternScale,
		ClearBorder:  true,
		Color:        DefaultColor(),
	}
}

// Color holds the module and background colors. With Auto set and a
// background image present, Light becomes white and Dark is picked from the
// background.
type Color struct {
	Light      color.Color
	Dark       color.Color
	Background color.Color
	Auto       bool
}

// DefaultColor is black modules on white.
func DefaultColor() Color {
	return Color{
		Light:      color.White,
		Dark:       color.Black,
		Background: color.White,
	}
}

// Logo is an image drawn over the center of the code.
type Logo struct {
	Image image.Image
	// Scale is the logo side relative to the module area, in (0, 0.5].
	Scale        float64
	BorderWidth  int
	BorderRadius int
}

// NewLogo returns a logo with default scale and border.
func NewLogo(img image.Image) *Logo {
	return &Logo{
		Image:        img,
		Scale:        DefaultLogoScale,
		BorderWidth:  DefaultLogoBorderWidth,
		BorderRadius: DefaultLogoBorderRadius,
	}
}

// Background is one of *StillBackground, *BlendBackground or *AnimatedBackground.
type Background interface {
	clipping() *image.Rectangle
	alpha() float64
}

// StillBackground draws an image behind the modules.
type StillBackground struct {
	Image image.Image
	// ClippingRect selects the part of Image to use, relative to its origin.
	ClippingRect *image.Rectangle
	Alpha        float64
}

// NewStillBackground returns a still background with default alpha.
func NewStillBackground(img image.Image) *StillBackground {
	return &StillBackground{Image: img, Alpha: DefaultBackgroundAlpha}
}

func (b *StillBackground) clipping() *image.Rectangle { return b.ClippingRect }
func (b *StillBackground) alpha() float64             { return b.Alpha }

// BlendBackground renders the code over ClippingRect of Image, cuts it to a
// rounded panel and places it back into a copy of the whole image.
type BlendBackground struct {
	Image        image.Image
	ClippingRect *image.Rectangle
	Alpha        float64
	BorderRadius int
}

// NewBlendBackground returns a blend background with default alpha and radius.
func NewBlendBackground(img image.Image) *BlendBackground {
	return &BlendBackground{Image: img, Alpha: DefaultBackgroundAlpha, BorderRadius: DefaultBlendRadius}
}

func (b *BlendBackground) clipping() *image.Rectangle { return b.ClippingRect }
func (b *BlendBackground) alpha() float64             { return b.Alpha }

// AnimatedBackground renders the code once per frame of an animation read
// from Input and writes the animation to Output in the same format.
type AnimatedBackground struct {
	Input        io.Reader
	Format       AnimationFormat
	Output       io.Writer
	ClippingRect *image.Rectangle
	Alpha        float64
}

// NewAnimatedBackground returns an animated background with default alpha.
func NewAnimatedBackground(in io.Reader, format AnimationFormat, out io.Writer) *AnimatedBackground {
	return &AnimatedBackground{Input: in, Format: format, Output: out, Alpha: DefaultBackgroundAlpha}
}

func (b *AnimatedBackground) clipping() *image.Rectangle { return b.ClippingRect }
func (b *AnimatedBackground) alpha() float64             { return b.Alpha }

func (o *RenderOption) validate() error {
	if o.Content == "" {
		return invalidf("content is empty")
	}
	if o.Size < 0 || o.BorderWidth < 0 || o.Size-2*o.BorderWidth <= 0 {
		return invalidf("invalid size %d or border width %d", o.Size, o.BorderWidth)
	}
	if !(o.PatternScale > 0 && o.PatternScale <= 1) {
		return invalidf("illegal pattern scale %g", o.PatternScale)
	}
	if l := o.Logo; l != nil && l.Image != nil {
		if !(l.Scale > 0 && l.Scale <= 0.5) ||
			l.BorderWidth < 0 || l.BorderWidth*2 >= o.Size ||
			l.BorderRadius < 0 {
			return invalidf("invalid logo settings")
		}
	}

	switch bg := o.Background.(type) {
	case nil:
		return nil
	case *StillBackground:
		if bg == nil {
			return invalidf("nil background")
		}
		if err := validateImage(bg.Image, bg.clipping()); err != nil {
			return err
		}
	case *BlendBackground:
		if bg == nil {
			return invalidf("nil background")
		}
		if err := validateImage(bg.Image, bg.clipping()); err != nil {
			return err
		}
		if bg.BorderRadius < 0 {
			return invalidf("negative blend border radius %d", bg.BorderRadius)
		}
	case *AnimatedBackground:
		if bg == nil {
			return invalidf("nil background")
		}
		if bg.Output == nil {
			return ErrMissingOutput
		}
		if bg.Input == nil {
			return invalidf("animated background input is nil")
		}
		if c := bg.clipping(); c != nil && c.Empty() {
			return invalidf("empty clipping rect")
		}
	default:
		return invalidf("unsupported background %T", bg)
	}

	if a := o.Background.alpha(); !(a >= 0 && a <= 1) {
		return invalidf("background alpha %g outside [0, 1]", a)
	}
	return nil
}

func validateImage(img image.Image, clip *image.Rectangle) error {
	if img == nil {
		return invalidf("background image is nil")
	}
	if clip == nil {
		return nil
	}
	bounds := image.Rectangle{Max: img.Bounds().Size()}
	if clip.Empty() || !clip.In(bounds) {
		return invalidf("clipping rect %v outside background %v", *clip, bounds)
	}
	return nil
}

func (o *RenderOption) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
