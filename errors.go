package awesomeqr

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/foundation/pkg/async"
)

var (
	// ErrInvalidConfig is returned when a RenderOption fails validation.
	// Nothing is encoded or drawn in that case.
	ErrInvalidConfig = errors.New("invalid render configuration")

	// ErrEncode is returned when the content cannot be encoded as a QR symbol.
	ErrEncode = errors.New("failed to encode content")

	// ErrFrameDecode is returned when an animated background cannot be read.
	ErrFrameDecode = errors.New("failed to decode animation frames")

	// ErrFrameEncode is returned when rendered frames cannot be written out.
	ErrFrameEncode = errors.New("failed to encode animation frames")

	// ErrMissingOutput is returned when an animated background has no output set.
	ErrMissingOutput = errors.New("output has not been set, it is required for animated backgrounds")

	// ErrTimeout is returned by RenderFuture.AwaitWithTimeout.
	ErrTimeout = async.ErrTimeout
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
