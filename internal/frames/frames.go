// Package frames decodes animated backgrounds into full frames and encodes
// rendered frames back into an animated container. GIF and APNG are
// supported. Both directions are sequential streams: a Decoder hands out one
// composed frame at a time and an Encoder accepts them in order until Close.
package frames

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Format is an animated container format.
type Format int

const (
	FormatGIF Format = iota
	FormatAPNG
)

func (f Format) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatAPNG:
		return "apng"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned for formats other than GIF and APNG.
var ErrUnknownFormat = errors.New("unknown animation format")

// ErrNoFrames is returned when an encoder is closed before any frame was pushed.
var ErrNoFrames = errors.New("no frames to encode")

// ParseFormat accepts "gif", "apng" and "png".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "gif":
		return FormatGIF, nil
	case "apng", "png":
		return FormatAPNG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Frame is one fully composed animation frame.
type Frame struct {
	Image *image.RGBA
	Delay time.Duration
}

// Decoder yields composed frames. Next returns io.EOF after the last frame.
type Decoder interface {
	Next() (*Frame, error)
	// Len reports the number of frames in the stream.
	Len() int
}

// Encoder collects rendered frames and writes the container on Close.
type Encoder interface {
	Push(f *Frame) error
	Close() error
}

// NewDecoder reads the whole animation from r.
func NewDecoder(format Format, r io.Reader) (Decoder, error) {
	switch format {
	case FormatGIF:
		return newGIFDecoder(r)
	case FormatAPNG:
		return newAPNGDecoder(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// NewEncoder returns an encoder writing to w once closed.
func NewEncoder(format Format, w io.Writer) (Encoder, error) {
	if w == nil {
		return nil, errors.New("nil output writer")
	}
	switch format {
	case FormatGIF:
		return &gifEncoder{w: w}, nil
	case FormatAPNG:
		return &apngEncoder{w: w}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
