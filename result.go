package awesomeqr

import (
	"image"
	"io"
)

// OutputType tells which render path produced a RenderResult.
type OutputType int

const (
	// OutputStill is a single image of exactly the requested size.
	OutputStill OutputType = iota
	// OutputBlend is the code panel placed inside a rescaled copy of the background.
	OutputBlend
	// OutputAnimated means the animation was written to Output; Image is its first frame.
	OutputAnimated
)

func (t OutputType) String() string {
	switch t {
	case OutputStill:
		return "Still"
	case OutputBlend:
		return "Blend"
	case OutputAnimated:
		return "Animated"
	}
	return "Unknown"
}

// RenderResult is owned by the caller; the renderer keeps no reference to it.
type RenderResult struct {
	Image  *image.RGBA
	Output io.Writer
	Type   OutputType
}
