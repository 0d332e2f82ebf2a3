// Package symbol encodes content into a raw QR module grid using gozxing.
package symbol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	"github.com/makiuchi-d/gozxing/qrcode/encoder"
)

// Level is the QR error-correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts L, M, Q or H, case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return LevelM, fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) zxing() (decoder.ErrorCorrectionLevel, error) {
	switch l {
	case LevelL:
		return decoder.ErrorCorrectionLevel_L, nil
	case LevelM:
		return decoder.ErrorCorrectionLevel_M, nil
	case LevelQ:
		return decoder.ErrorCorrectionLevel_Q, nil
	case LevelH:
		return decoder.ErrorCorrectionLevel_H, nil
	}
	return decoder.ErrorCorrectionLevel_M, fmt.Errorf("unknown error correction level %d", int(l))
}

// Symbol is an encoded QR code before any styling.
type Symbol struct {
	// Bits is indexed [y][x]; true means a set (dark) module.
	Bits [][]bool
	// AlignmentCenters are the alignment pattern center coordinates of the
	// symbol's version, empty for version 1.
	AlignmentCenters []int
	Version          int
	Level            Level
}

// Size returns the number of modules per side.
func (s *Symbol) Size() int { return len(s.Bits) }

// Encode builds the module grid for content. Content is encoded as UTF-8.
func Encode(content string, level Level) (*Symbol, error) {
	if content == "" {
		return nil, errors.New("found empty content")
	}
	ecLevel, err := level.zxing()
	if err != nil {
		return nil, err
	}

	hints := make(map[gozxing.EncodeHintType]interface{})
	hints[gozxing.EncodeHintType_CHARACTER_SET] = "UTF-8"
	hints[gozxing.EncodeHintType_ERROR_CORRECTION] = ecLevel

	code, e := encoder.Encoder_encode(content, ecLevel, hints)
	if e != nil {
		return nil, fmt.Errorf("qr encode: %w", e)
	}

	m := code.GetMatrix()
	if m == nil {
		return nil, errors.New("qr encode: empty matrix")
	}
	n := m.GetWidth()
	bits := make([][]bool, n)
	for y := 0; y < n; y++ {
		bits[y] = make([]bool, n)
		for x := 0; x < n; x++ {
			bits[y][x] = m.Get(x, y) == 1
		}
	}

	version := code.GetVersion()
	centers := append([]int(nil), version.GetAlignmentPatternCenters()...)

	return &Symbol{
		Bits:             bits,
		AlignmentCenters: centers,
		Version:          version.GetVersionNumber(),
		Level:            level,
	}, nil
}
