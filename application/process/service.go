package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/video"
)

// VideoFinder locates the newest source video in a directory
type VideoFinder interface {
	NewestVideo(dir, trimSuffix string) (string, error)
}

// Trimmer runs the trim and reveal for a marked range
type Trimmer interface {
	Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error)
}

// Service runs a trim without the interactive tool: probe the source,
// resolve the requested range to frames, trim and reveal.
type Service struct {
	prober      video.Prober
	trimmer     Trimmer
	fileChecker video.FileChecker
	finder      VideoFinder
	trimSuffix  string
	output      io.Writer
}

// NewService creates a new process service
func NewService(
	prober video.Prober,
	trimmer Trimmer,
	fileChecker video.FileChecker,
	finder VideoFinder,
	trimSuffix string,
	output io.Writer,
) *Service {
	return &Service{
		prober:      prober,
		trimmer:     trimmer,
		fileChecker: fileChecker,
		finder:      finder,
		trimSuffix:  trimSuffix,
		output:      output,
	}
}

// Input contains all input parameters for the process command
type Input struct {
	InputPath string // Source video path (optional if SearchDir is set)
	SearchDir string // Directory searched for the newest video
	Start     string // Start frame or HH:MM:SS(.mmm)
	End       string // End frame or HH:MM:SS(.mmm), inclusive
}

// Result contains the results of a successful process run
type Result struct {
	Session    video.Session
	Start      int
	End        int
	OutputPath string
	Revealed   bool
}

// ValidationError contains details about a validation failure with suggestions
type ValidationError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this, run:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Process runs the complete workflow
func (s *Service) Process(ctx context.Context, input Input) (*Result, error) {
	startTime := time.Now()

	sourcePath, err := s.resolveSource(input)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.output, "Using source: %s\n\n", filepath.Base(sourcePath))

	// Step 1: Probe
	fmt.Fprintf(s.output, "[1/3] Probing source...\n")
	session, err := s.prober.Probe(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %w", err)
	}
	fmt.Fprintf(s.output, "      %s\n", session)

	start, end, err := resolveRange(session, input)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.output, "      Frames %d-%d (%s - %s)\n\n", start, end,
		video.TimestampForFrame(start, session.FrameRate), video.TimestampForFrame(end, session.FrameRate))

	// Step 2: Trim
	fmt.Fprintf(s.output, "[2/3] Trimming frames...\n")
	trimResult, err := s.trimmer.Trim(ctx, appvideo.TrimInput{
		SourcePath: sourcePath,
		Marks:      video.Marks{Start: &start, End: &end},
	})
	if err != nil {
		s.showRecoveryCommands(sourcePath, start, end)
		return nil, fmt.Errorf("trim failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Created: %s\n\n", trimResult.OutputPath)

	// Step 3: Reveal
	fmt.Fprintf(s.output, "[3/3] Revealing output...\n")
	if trimResult.Revealed {
		fmt.Fprintf(s.output, "      Opened in file browser\n\n")
	} else {
		fmt.Fprintf(s.output, "      Skipped\n\n")
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(s.output, "Done! Completed in %s\n", formatDuration(elapsed))

	return &Result{
		Session:    session,
		Start:      start,
		End:        end,
		OutputPath: trimResult.OutputPath,
		Revealed:   trimResult.Revealed,
	}, nil
}

func (s *Service) resolveSource(input Input) (string, error) {
	sourcePath := input.InputPath
	if sourcePath == "" {
		if input.SearchDir == "" {
			return "", &ValidationError{Message: "no source video given", Suggestion: "frametrim process --input <video> --start <frame> --end <frame>"}
		}
		newest, err := s.finder.NewestVideo(input.SearchDir, s.trimSuffix)
		if err != nil {
			return "", err
		}
		sourcePath = newest
	} else if !filepath.IsAbs(sourcePath) && input.SearchDir != "" {
		sourcePath = filepath.Join(input.SearchDir, sourcePath)
	}

	if !s.fileChecker.Exists(sourcePath) {
		return "", fmt.Errorf("source file does not exist: %s", sourcePath)
	}
	return sourcePath, nil
}

// resolveRange converts the start and end inputs to frame indexes of session
func resolveRange(session video.Session, input Input) (int, int, error) {
	start, err := video.ParsePosition(input.Start, session.FrameRate)
	if err != nil {
		return 0, 0, &ValidationError{Message: fmt.Sprintf("invalid start: %v", err), Err: err}
	}
	end, err := video.ParsePosition(input.End, session.FrameRate)
	if err != nil {
		return 0, 0, &ValidationError{Message: fmt.Sprintf("invalid end: %v", err), Err: err}
	}

	if session.HasFrames() && !session.Contains(end) {
		return 0, 0, &ValidationError{
			Message:    fmt.Sprintf("end frame %d is past the last frame %d of %s", end, session.LastFrame(), filepath.Base(session.SourcePath)),
			Suggestion: fmt.Sprintf("frametrim probe %q", session.SourcePath),
			Err:        video.ErrInvalidRange,
		}
	}
	if start > end {
		return 0, 0, &ValidationError{
			Message: fmt.Sprintf("start frame %d is after end frame %d", start, end),
			Err:     video.ErrInvalidRange,
		}
	}
	return start, end, nil
}

func (s *Service) showRecoveryCommands(sourcePath string, start, end int) {
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, "To retry manually:")
	fmt.Fprintf(s.output, "  1. Check:      frametrim probe %q\n", sourcePath)
	fmt.Fprintf(s.output, "  2. Trim:       frametrim trim --source %q --start %d --end %d\n", sourcePath, start, end)
	fmt.Fprintln(s.output)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// StepInfo provides information about a workflow step
type StepInfo struct {
	Number      int
	Description string
}

// GetSteps returns the list of workflow steps
func GetSteps() []StepInfo {
	return []StepInfo{
		{1, "Probing source"},
		{2, "Trimming frames"},
		{3, "Revealing output"},
	}
}

// IsValidationError reports whether err came from input validation
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
