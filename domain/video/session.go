package video

import (
	"fmt"
	"image"
	"path/filepath"
)

// Session describes an opened video source. It is created when a source is
// loaded and never changes while the decoder handle stays open.
type Session struct {
	SourcePath  string
	TotalFrames int
	// FrameRate is informational only; playback runs on the clock interval.
	FrameRate float64
	Width     int
	Height    int
}

// HasFrames returns true if the session holds at least one decodable frame
func (s Session) HasFrames() bool {
	return s.TotalFrames > 0
}

// LastFrame returns the highest valid frame index, or -1 for an empty session
func (s Session) LastFrame() int {
	return s.TotalFrames - 1
}

// Contains reports whether index is a valid frame index of the session
func (s Session) Contains(index int) bool {
	return index >= 0 && index < s.TotalFrames
}

// String returns a short human readable description of the session
func (s Session) String() string {
	return fmt.Sprintf("%s (%d frames, %.2f fps, %dx%d)",
		filepath.Base(s.SourcePath), s.TotalFrames, s.FrameRate, s.Width, s.Height)
}

// Frame is a single decoded image at a known frame index
type Frame struct {
	Index int
	Image image.Image
}
