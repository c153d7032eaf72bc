//go:build opencv

package opencv

import (
	"context"
	"fmt"

	"frametrim/domain/video"

	"gocv.io/x/gocv"
)

// Decoder implements video.Decoder with an OpenCV VideoCapture
type Decoder struct{}

// NewDecoder creates a new OpenCV decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Available reports whether this build links OpenCV
func Available() bool {
	return true
}

// Open implements video.Decoder
func (d *Decoder) Open(ctx context.Context, path string) (video.Handle, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrUnreadableSource, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: cannot open %s", video.ErrUnreadableSource, path)
	}

	frames := int(capture.Get(gocv.VideoCaptureFrameCount))
	if frames < 0 {
		frames = 0
	}

	return &handle{
		capture: capture,
		frame:   gocv.NewMat(),
		session: video.Session{
			SourcePath:  path,
			TotalFrames: frames,
			FrameRate:   capture.Get(gocv.VideoCaptureFPS),
			Width:       int(capture.Get(gocv.VideoCaptureFrameWidth)),
			Height:      int(capture.Get(gocv.VideoCaptureFrameHeight)),
		},
	}, nil
}

type handle struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	session video.Session
	closed  bool
}

func (h *handle) Session() video.Session {
	return h.session
}

// SeekAndRead repositions the capture before every read; the position model
// can jump anywhere between two reads.
func (h *handle) SeekAndRead(ctx context.Context, index int) (video.Frame, error) {
	if h.closed {
		return video.Frame{}, fmt.Errorf("%w: handle closed", video.ErrDecodeFailure)
	}
	if index < 0 {
		return video.Frame{}, fmt.Errorf("%w: negative frame index %d", video.ErrDecodeFailure, index)
	}
	if index >= h.session.TotalFrames {
		return video.Frame{}, video.ErrEndOfStream
	}

	h.capture.Set(gocv.VideoCapturePosFrames, float64(index))
	if ok := h.capture.Read(&h.frame); !ok || h.frame.Empty() {
		return video.Frame{}, video.ErrEndOfStream
	}

	img, err := h.frame.ToImage()
	if err != nil {
		return video.Frame{}, fmt.Errorf("%w: frame %d: %v", video.ErrDecodeFailure, index, err)
	}

	return video.Frame{Index: index, Image: img}, nil
}

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.frame.Close()
	return h.capture.Close()
}

// Ensure Decoder implements video.Decoder
var _ video.Decoder = (*Decoder)(nil)
