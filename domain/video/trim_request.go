package video

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultTrimSuffix marks an output file as a trimmed derivative of its source
const DefaultTrimSuffix = "_trimmed"

// trimContainer is the container extension of every trimmed output
const trimContainer = ".mp4"

// TrimRequest represents a request to cut an inclusive frame range out of a video
type TrimRequest struct {
	SourcePath string
	Start      int
	End        int
}

// NewTrimRequest creates a new TrimRequest for the inclusive range [start, end]
func NewTrimRequest(sourcePath string, start, end int) (*TrimRequest, error) {
	req := &TrimRequest{
		SourcePath: sourcePath,
		Start:      start,
		End:        end,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the trim request is valid
func (r *TrimRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}

	if r.Start < 0 {
		return fmt.Errorf("%w: start frame %d is negative", ErrInvalidRange, r.Start)
	}

	if r.End < r.Start {
		return fmt.Errorf("%w: end frame %d is before start frame %d", ErrInvalidRange, r.End, r.Start)
	}

	return nil
}

// FrameCount returns the number of frames the trimmed output will hold
func (r *TrimRequest) FrameCount() int {
	return r.End - r.Start + 1
}

// SelectExpression returns the encoder filter selecting frames Start..End inclusive.
// Commas are escaped because they separate filters in a filter graph.
func (r *TrimRequest) SelectExpression() string {
	return fmt.Sprintf(`select=between(n\,%d\,%d)`, r.Start, r.End)
}

// OutputFilename returns the source base name with suffix appended, e.g. clip_trimmed.mp4
func (r *TrimRequest) OutputFilename(suffix string) string {
	if suffix == "" {
		suffix = DefaultTrimSuffix
	}
	base := filepath.Base(r.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix + trimContainer
}

// OutputPath returns the output path next to the source file
func (r *TrimRequest) OutputPath(suffix string) string {
	return filepath.Join(filepath.Dir(r.SourcePath), r.OutputFilename(suffix))
}
