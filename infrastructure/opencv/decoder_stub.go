//go:build !opencv

package opencv

import (
	"context"
	"fmt"

	"frametrim/domain/video"
)

// Decoder is a stub when GoCV/OpenCV is not available
type Decoder struct{}

// NewDecoder creates a stub decoder (requires building with -tags=opencv)
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Available reports whether this build links OpenCV
func Available() bool {
	return false
}

// Open returns an error indicating the OpenCV backend is not available
func (d *Decoder) Open(ctx context.Context, path string) (video.Handle, error) {
	return nil, fmt.Errorf("%w: opencv decoder not available: build with '-tags=opencv' and install OpenCV/GoCV", video.ErrUnreadableSource)
}

// Ensure Decoder implements video.Decoder
var _ video.Decoder = (*Decoder)(nil)
