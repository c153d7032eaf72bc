package video

import "context"

// Decoder opens video sources for random-access decoding
// This is a port that can be implemented by different infrastructure adapters
type Decoder interface {
	// Open opens the source at path. Failures wrap ErrUnreadableSource.
	Open(ctx context.Context, path string) (Handle, error)
}

// Handle is an open video source owned by exactly one trim tool
type Handle interface {
	// Session returns the metadata captured when the handle was opened
	Session() Session

	// SeekAndRead repositions to the absolute index and decodes one frame.
	// It returns ErrEndOfStream past the last frame and ErrDecodeFailure
	// for a frame that cannot be decoded.
	SeekAndRead(ctx context.Context, index int) (Frame, error)

	// Close releases the underlying source
	Close() error
}

// Prober reads container metadata without decoding frames
type Prober interface {
	Probe(ctx context.Context, path string) (Session, error)
}
