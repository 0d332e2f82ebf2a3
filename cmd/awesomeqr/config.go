package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/oza6ut0ne/awesomeqr"
)

// envPrefix is prepended to every environment variable name in Config.
const envPrefix = "AWESOMEQR_"

// Render modes selected with -mode.
const (
	modeStill    = "still"
	modeBlend    = "blend"
	modeAnimated = "animated"
)

// Config holds every CLI setting. Values come from the environment (and a
// .env file when present) and are then overridden by flags.
type Config struct {
	Content string `env:"CONTENT"`
	Output  string `env:"OUTPUT" envDefault:"qr.png"`

	Size         int     `env:"SIZE" envDefault:"800"`
	Border       int     `env:"BORDER" envDefault:"20"`
	ECL          string  `env:"ECL" envDefault:"M"`
	PatternScale float64 `env:"PATTERN_SCALE" envDefault:"0.4"`
	Rounded      bool    `env:"ROUNDED" envDefault:"false"`
	ClearBorder  bool    `env:"CLEAR_BORDER" envDefault:"true"`

	AutoColor       bool   `env:"AUTO_COLOR" envDefault:"false"`
	Dark            string `env:"DARK" envDefault:"#000000"`
	Light           string `env:"LIGHT" envDefault:"#FFFFFF"`
	BackgroundColor string `env:"BACKGROUND_COLOR" envDefault:"#FFFFFF"`

	Logo       string  `env:"LOGO"`
	LogoScale  float64 `env:"LOGO_SCALE" envDefault:"0.2"`
	LogoBorder int     `env:"LOGO_BORDER" envDefault:"10"`
	LogoRadius int     `env:"LOGO_RADIUS" envDefault:"8"`

	Background  string  `env:"BACKGROUND"`
	Mode        string  `env:"MODE" envDefault:"still"`
	Clip        string  `env:"CLIP"`
	Alpha       float64 `env:"ALPHA" envDefault:"0.6"`
	BlendRadius int     `env:"BLEND_RADIUS" envDefault:"10"`

	Debug  bool `env:"DEBUG" envDefault:"false"`
	Verify bool `env:"VERIFY" envDefault:"false"`
}

// loadEnv reads .env if present, then the environment.
func loadEnv() (Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// parseFlags overrides cfg with command-line flags. A single positional
// argument is taken as the content.
func parseFlags(cfg Config, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("awesomeqr", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: awesomeqr [flags] <content>\n\nFlags (environment variables use the %s prefix):\n", envPrefix)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Content, "content", cfg.Content, "Text to encode.")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output file. Animated renders use the background's format.")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "Side of the output image in pixels.")
	fs.IntVar(&cfg.Border, "border", cfg.Border, "Margin around the code in pixels.")
	fs.StringVar(&cfg.ECL, "ecl", cfg.ECL, "Error correction level: L, M, Q or H.")
	fs.Float64Var(&cfg.PatternScale, "pattern-scale", cfg.PatternScale, "Diameter of rounded data dots relative to a module, in (0, 1].")
	fs.BoolVar(&cfg.Rounded, "rounded", cfg.Rounded, "Draw data modules as dots.")
	fs.BoolVar(&cfg.ClearBorder, "clear-border", cfg.ClearBorder, "Keep the background out of the border.")
	fs.BoolVar(&cfg.AutoColor, "auto-color", cfg.AutoColor, "Take the dark color from the background image.")
	fs.StringVar(&cfg.Dark, "dark", cfg.Dark, "Dark module color, #RRGGBB or #AARRGGBB.")
	fs.StringVar(&cfg.Light, "light", cfg.Light, "Light module color, #RRGGBB or #AARRGGBB.")
	fs.StringVar(&cfg.BackgroundColor, "bg-color", cfg.BackgroundColor, "Fill behind the modules, #RRGGBB or #AARRGGBB.")
	fs.StringVar(&cfg.Logo, "logo", cfg.Logo, "Logo image drawn in the center.")
	fs.Float64Var(&cfg.LogoScale, "logo-scale", cfg.LogoScale, "Logo side relative to the code, in (0, 0.5].")
	fs.IntVar(&cfg.LogoBorder, "logo-border", cfg.LogoBorder, "Width of the light frame around the logo.")
	fs.IntVar(&cfg.LogoRadius, "logo-radius", cfg.LogoRadius, "Corner radius of the logo.")
	fs.StringVar(&cfg.Background, "bg", cfg.Background, "Background image (GIF or APNG in animated mode).")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Background mode: still, blend or animated.")
	fs.StringVar(&cfg.Clip, "clip", cfg.Clip, "Clipping rectangle of the background as x0,y0,x1,y1.")
	fs.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Opacity of the background image, in [0, 1].")
	fs.IntVar(&cfg.BlendRadius, "blend-radius", cfg.BlendRadius, "Corner radius of the blended panel.")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging.")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Scan the still output back and compare it with the content.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Content = fs.Arg(0)
	default:
		return Config{}, errors.New("expected at most one content argument")
	}
	if cfg.Content == "" {
		fs.Usage()
		return Config{}, errors.New("no content given")
	}
	return cfg, nil
}

// renderOption converts the plain settings. Images are attached by the caller.
func (c Config) renderOption() (awesomeqr.RenderOption, error) {
	opt := awesomeqr.DefaultRenderOption(c.Content)
	opt.Size = c.Size
	opt.BorderWidth = c.Border
	opt.PatternScale = c.PatternScale
	opt.RoundedPatterns = c.Rounded
	opt.ClearBorder = c.ClearBorder

	ecl, err := awesomeqr.ParseErrorCorrectionLevel(c.ECL)
	if err != nil {
		return opt, err
	}
	opt.ECL = ecl

	opt.Color.Auto = c.AutoColor
	for _, p := range []struct {
		dst  *color.Color
		name string
		hex  string
	}{
		{&opt.Color.Dark, "dark", c.Dark},
		{&opt.Color.Light, "light", c.Light},
		{&opt.Color.Background, "bg-color", c.BackgroundColor},
	} {
		col, err := parseHexColor(p.hex)
		if err != nil {
			return opt, fmt.Errorf("invalid %s color: %w", p.name, err)
		}
		*p.dst = col
	}
	return opt, nil
}

// parseHexColor accepts #RRGGBB and #AARRGGBB, with or without the '#'.
func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	alpha := uint64(0xff)
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[:2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		alpha, s = a, s[2:]
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q must be #RRGGBB or #AARRGGBB", s)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// parseClip reads "x0,y0,x1,y1". An empty string means no clipping.
func parseClip(s string) (*image.Rectangle, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("clip %q must be x0,y0,x1,y1", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("clip %q: %w", s, err)
		}
		v[i] = n
	}
	r := image.Rect(v[0], v[1], v[2], v[3])
	return &r, nil
}
