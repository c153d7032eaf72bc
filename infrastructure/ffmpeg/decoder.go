package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"

	"frametrim/domain/video"
	"frametrim/infrastructure/command"
)

// Decoder implements video.Decoder by asking ffmpeg for one frame per read.
// Every read decodes from the start of the stream up to the selected index,
// which keeps seeking absolute at the cost of latency on long sources; the
// opencv backend seeks directly.
type Decoder struct {
	ffmpegPath string
	runner     command.Runner
	probers    []video.Prober
}

// DecoderOption is a functional option for configuring Decoder
type DecoderOption func(*Decoder)

// WithDecoderFFmpegPath sets a custom ffmpeg executable path
func WithDecoderFFmpegPath(path string) DecoderOption {
	return func(d *Decoder) {
		if path != "" {
			d.ffmpegPath = path
		}
	}
}

// WithDecoderCommandRunner sets a custom command runner (for testing)
func WithDecoderCommandRunner(runner command.Runner) DecoderOption {
	return func(d *Decoder) {
		d.runner = runner
	}
}

// WithProbers sets the metadata probers, tried in order until one succeeds
func WithProbers(probers ...video.Prober) DecoderOption {
	return func(d *Decoder) {
		d.probers = probers
	}
}

// NewDecoder creates a new ffmpeg-backed decoder
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		ffmpegPath: "ffmpeg",
		runner:     command.NewExecRunner(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if len(d.probers) == 0 {
		d.probers = []video.Prober{NewFFprobe("", d.runner)}
	}

	return d
}

// Open implements video.Decoder
func (d *Decoder) Open(ctx context.Context, path string) (video.Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrUnreadableSource, err)
	}

	var errs []error
	for _, p := range d.probers {
		session, err := p.Probe(ctx, path)
		if err == nil {
			session.SourcePath = path
			return &handle{decoder: d, session: session}, nil
		}
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w: %s: %v", video.ErrUnreadableSource, path, errors.Join(errs...))
}

// FrameArgs returns the ffmpeg arguments that emit frame index as a single PNG on stdout
func FrameArgs(path string, index int) []string {
	return []string{
		"-v", "error",
		"-i", path,
		"-vf", fmt.Sprintf(`select=eq(n\,%d)`, index),
		"-vsync", "vfr",
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}
}

// handle is one open source; it is only touched by the owning event loop
type handle struct {
	decoder *Decoder
	session video.Session
	closed  bool
}

func (h *handle) Session() video.Session {
	return h.session
}

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

	out, err := h.decoder.runner.Output(ctx, h.decoder.ffmpegPath, FrameArgs(h.session.SourcePath, index)...)
	if err != nil {
		return video.Frame{}, fmt.Errorf("%w: frame %d: %v", video.ErrDecodeFailure, index, err)
	}
	// Container metadata can overstate the frame count; ffmpeg then selects nothing.
	if len(out) == 0 {
		return video.Frame{}, video.ErrEndOfStream
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return video.Frame{}, fmt.Errorf("%w: frame %d: %v", video.ErrDecodeFailure, index, err)
	}

	return video.Frame{Index: index, Image: img}, nil
}

func (h *handle) Close() error {
	h.closed = true
	return nil
}

// Ensure Decoder implements video.Decoder
var _ video.Decoder = (*Decoder)(nil)
