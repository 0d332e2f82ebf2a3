package awesomeqr

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/oza6ut0ne/awesomeqr/internal/canvas"
	"github.com/oza6ut0ne/awesomeqr/internal/frames"
)

// animate renders the code over every frame of bg.Input, one frame at a
// time, and writes the result to bg.Output once all frames succeeded.
func (r *renderer) animate(bg *AnimatedBackground) (*RenderResult, error) {
	dec, err := frames.NewDecoder(bg.Format, bg.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to init: %w", ErrFrameDecode, err)
	}
	enc, err := frames.NewEncoder(bg.Format, bg.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrameEncode, err)
	}
	r.log.Debug("rendering animation",
		zap.Stringer("format", bg.Format),
		zap.Int("frames", dec.Len()),
	)

	var first *RenderResult
	count := 0
	for {
		f, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %w", ErrFrameDecode, count, err)
		}

		rendered := r.frame(clip(f.Image, bg))
		if err := enc.Push(&frames.Frame{Image: rendered, Delay: f.Delay}); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %w", ErrFrameEncode, count, err)
		}
		if first == nil {
			first = &RenderResult{Image: canvas.Clone(rendered), Output: bg.Output, Type: OutputAnimated}
		}
		count++
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to finalize: %w", ErrFrameEncode, err)
	}
	r.log.Debug("animation written", zap.Int("frames", count))
	return first, nil
}
