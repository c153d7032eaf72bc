package video

import (
	"context"
	"errors"
	"fmt"

	"frametrim/domain/logging"
	"frametrim/domain/video"
	"frametrim/infrastructure/logger"
)

// TrimResult contains the result of a trim operation
type TrimResult struct {
	OutputPath string
	Start      int
	End        int
	Frames     int
	// Skipped is set when a mark was missing and nothing was encoded
	Skipped bool
	// Revealed is false when the file browser could not be opened
	Revealed bool
}

// TrimService coordinates video trimming operations
type TrimService struct {
	trimmer     video.Trimmer
	fileChecker video.FileChecker
	revealer    video.Revealer
	suffix      string
	logger      logging.Logger
}

// ServiceOption configures a TrimService
type ServiceOption func(*TrimService)

// WithRevealer shows successful outputs in the file browser
func WithRevealer(r video.Revealer) ServiceOption {
	return func(s *TrimService) {
		s.revealer = r
	}
}

// WithSuffix sets the output filename suffix
func WithSuffix(suffix string) ServiceOption {
	return func(s *TrimService) {
		if suffix != "" {
			s.suffix = suffix
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l logging.Logger) ServiceOption {
	return func(s *TrimService) {
		s.logger = l
	}
}

// NewTrimService creates a new TrimService
func NewTrimService(trimmer video.Trimmer, fileChecker video.FileChecker, opts ...ServiceOption) *TrimService {
	s := &TrimService{
		trimmer:     trimmer,
		fileChecker: fileChecker,
		suffix:      video.DefaultTrimSuffix,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("trim")
	return s
}

// TrimInput represents the input for a trim operation
type TrimInput struct {
	SourcePath string
	Marks      video.Marks
}

// Trim encodes the marked frame range into a sibling file of the source.
// A missing mark is a no-op: the result is Skipped and the error is nil.
func (s *TrimService) Trim(ctx context.Context, input TrimInput) (*TrimResult, error) {
	if input.Marks.Start == nil || input.Marks.End == nil {
		s.logger.Info("Trim skipped: %s", video.ErrMarksIncomplete)
		return &TrimResult{Skipped: true}, nil
	}

	// Verify source file exists
	if !s.fileChecker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source file does not exist: %s", input.SourcePath)
	}

	req, err := video.NewTrimRequest(input.SourcePath, *input.Marks.Start, *input.Marks.End)
	if err != nil {
		return nil, err
	}

	outputPath := req.OutputPath(s.suffix)
	s.logger.Info("Trimming %d frames (%d-%d) of %s", req.FrameCount(), req.Start, req.End, req.SourcePath)

	if err := s.trimmer.Trim(ctx, req, outputPath); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("trim cancelled: %w", ctxErr)
		}
		if !errors.Is(err, video.ErrEncodeFailed) {
			err = fmt.Errorf("%w: %w", video.ErrEncodeFailed, err)
		}
		s.logger.Error("Trim failed: %s", err)
		return nil, err
	}
	s.logger.Info("Trim finished: %s", outputPath)

	result := &TrimResult{
		OutputPath: outputPath,
		Start:      req.Start,
		End:        req.End,
		Frames:     req.FrameCount(),
	}

	// The encode already succeeded; reveal problems are only reported.
	if s.revealer != nil {
		if err := s.revealer.Reveal(ctx, outputPath); err != nil {
			s.logger.Warn("Cannot reveal %s: %s", outputPath, err)
		} else {
			result.Revealed = true
		}
	}

	return result, nil
}
