package video

import "context"

// Trimmer defines the interface for video trimming operations
// This is a port that can be implemented by different infrastructure adapters
type Trimmer interface {
	// Trim cuts the requested frame range out of the source and saves it to outputPath
	Trim(ctx context.Context, req *TrimRequest, outputPath string) error
}

// FileChecker defines the interface for checking file existence
// This is used to validate that source files exist before trimming
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// Revealer shows a file in the host's file browser
type Revealer interface {
	// Reveal opens the file browser with path selected. Failures wrap ErrRevealFailed.
	Reveal(ctx context.Context, path string) error
}
