package ffmpeg

import (
	"context"
	"fmt"

	"frametrim/domain/video"
	"frametrim/infrastructure/command"
)

// Trimmer implements video.Trimmer using ffmpeg's select filter
type Trimmer struct {
	ffmpegPath string
	runner     command.Runner
}

// TrimmerOption is a functional option for configuring Trimmer
type TrimmerOption func(*Trimmer)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) TrimmerOption {
	return func(t *Trimmer) {
		if path != "" {
			t.ffmpegPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) TrimmerOption {
	return func(t *Trimmer) {
		t.runner = runner
	}
}

// NewTrimmer creates a new FFmpeg-based trimmer
func NewTrimmer(opts ...TrimmerOption) *Trimmer {
	t := &Trimmer{
		ffmpegPath: "ffmpeg",
		runner:     command.NewExecRunner(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TrimArgs returns the ffmpeg arguments selecting req's inclusive frame range.
// Frames outside the selection are dropped, not retimed, so the output uses
// variable frame timing.
func TrimArgs(req *video.TrimRequest, outputPath string) []string {
	return []string{
		"-i", req.SourcePath,
		"-vf", req.SelectExpression(),
		"-vsync", "vfr",
		"-y", // Overwrite output file if it exists
		outputPath,
	}
}

// Trim implements video.Trimmer
func (t *Trimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	out, err := t.runner.CombinedOutput(ctx, t.ffmpegPath, TrimArgs(req, outputPath)...)
	if err != nil {
		return &video.EncodeError{
			ExitCode: command.ExitCode(err),
			Output:   string(out),
			Err:      err,
		}
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (t *Trimmer) VerifyInstalled(ctx context.Context) error {
	_, err := t.runner.Output(ctx, t.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Trimmer implements video.Trimmer
var _ video.Trimmer = (*Trimmer)(nil)
