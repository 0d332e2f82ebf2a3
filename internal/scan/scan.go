// Package scan checks that a rendered image still reads as a QR code.
package scan

import (
	"errors"
	"image"
	"sort"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// ErrNotFound is returned when no QR code could be read from the image.
var ErrNotFound = errors.New("no QR code found")

// Decode returns the text of the longest QR code found in img.
func Decode(img image.Image) (string, error) {
	src := gozxing.NewLuminanceSourceFromImage(img)

	// Try Hybrid first, then Global
	if text, ok := decodeWith(gozxing.NewHybridBinarizer(src)); ok {
		return text, nil
	}
	if text, ok := decodeWith(gozxing.NewGlobalHistgramBinarizer(src)); ok {
		return text, nil
	}
	return "", ErrNotFound
}

func decodeWith(binarizer gozxing.Binarizer) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmap(binarizer)
	if err != nil {
		return "", false
	}
	reader := qrcode.NewQRCodeMultiReader()
	results, err := reader.DecodeMultiple(bmp, nil)
	if err != nil || len(results) == 0 {
		return "", false
	}
	sort.Slice(results, func(i, j int) bool {
		return len(results[i].GetText()) > len(results[j].GetText())
	})
	return results[0].GetText(), true
}
