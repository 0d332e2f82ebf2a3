// Command awesomeqr renders a styled QR code to a PNG file, or over every
// frame of an animated GIF or APNG background.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/oza6ut0ne/awesomeqr"
	"github.com/oza6ut0ne/awesomeqr/internal/frames"
	"github.com/oza6ut0ne/awesomeqr/internal/scan"
)

func main() {
	cfg, err := loadEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg, err = parseFlags(cfg, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg Config, logger *zap.Logger) error {
	opt, err := cfg.renderOption()
	if err != nil {
		return err
	}
	opt.Logger = logger

	if cfg.Logo != "" {
		img, err := imaging.Open(cfg.Logo, imaging.AutoOrientation(true))
		if err != nil {
			return fmt.Errorf("failed to open logo %s: %w", cfg.Logo, err)
		}
		logo := awesomeqr.NewLogo(img)
		logo.Scale, logo.BorderWidth, logo.BorderRadius = cfg.LogoScale, cfg.LogoBorder, cfg.LogoRadius
		opt.Logo = logo
	}

	if cfg.Background != "" && cfg.Mode == modeAnimated {
		return renderAnimated(cfg, opt)
	}
	if err := attachBackground(cfg, &opt); err != nil {
		return err
	}

	res, err := awesomeqr.Render(opt)
	if err != nil {
		return err
	}

	outFile, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", cfg.Output, err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, res.Image); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	b := res.Image.Bounds()
	fmt.Printf("Successfully created %s QR code %s (%dx%d).\n", res.Type, cfg.Output, b.Dx(), b.Dy())

	if cfg.Verify {
		return verify(res, cfg.Content)
	}
	return nil
}

func attachBackground(cfg Config, opt *awesomeqr.RenderOption) error {
	if cfg.Background == "" {
		return nil
	}
	clip, err := parseClip(cfg.Clip)
	if err != nil {
		return err
	}
	img, err := imaging.Open(cfg.Background, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to open background %s: %w", cfg.Background, err)
	}

	switch cfg.Mode {
	case modeStill:
		bg := awesomeqr.NewStillBackground(img)
		bg.ClippingRect, bg.Alpha = clip, cfg.Alpha
		opt.Background = bg
	case modeBlend:
		bg := awesomeqr.NewBlendBackground(img)
		bg.ClippingRect, bg.Alpha, bg.BorderRadius = clip, cfg.Alpha, cfg.BlendRadius
		opt.Background = bg
	default:
		return fmt.Errorf("invalid mode '%s'. Please use 'still', 'blend' or 'animated'", cfg.Mode)
	}
	return nil
}

func renderAnimated(cfg Config, opt awesomeqr.RenderOption) (err error) {
	format, err := frames.FormatFromPath(cfg.Background)
	if err != nil {
		return err
	}
	clip, err := parseClip(cfg.Clip)
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.Background)
	if err != nil {
		return fmt.Errorf("failed to open background %s: %w", cfg.Background, err)
	}
	defer in.Close()

	outFile, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", cfg.Output, err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(cfg.Output)
		}
	}()

	bg := awesomeqr.NewAnimatedBackground(in, format, outFile)
	bg.ClippingRect, bg.Alpha = clip, cfg.Alpha
	opt.Background = bg

	res, err := awesomeqr.Render(opt)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully created animated QR code %s (%s).\n", cfg.Output, format)

	if cfg.Verify {
		return verify(res, cfg.Content)
	}
	return nil
}

// verify scans the rendered image (the first frame for animations).
func verify(res *awesomeqr.RenderResult, content string) error {
	text, err := scan.Decode(res.Image)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if text != content {
		return fmt.Errorf("verification failed: decoded %q, want %q", text, content)
	}
	fmt.Println("Verified: the output scans back to its content.")
	return nil
}
