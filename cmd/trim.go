package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/video"
	"frametrim/infrastructure/command"
	"frametrim/infrastructure/filesystem"
	"frametrim/infrastructure/reveal"

	"github.com/spf13/cobra"
)

var (
	trimSourcePath string
	trimStart      string
	trimEnd        string
	trimNoReveal   bool
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim a video to an inclusive frame range",
	Long: `Trim a video file to the frames between --start and --end, inclusive.

Positions are frame numbers (0 is the first frame) or timestamps in
HH:MM:SS(.mmm) format, which are converted with the source frame rate.
The output is written next to the source as <name>_trimmed.mp4.

Example:
  frametrim trim --source clip.mp4 --start 120 --end 480
  frametrim trim --source clip.mp4 --start 00:00:05 --end 00:00:19.500`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimSourcePath, "source", "", "Path to source video file (required)")
	trimCmd.Flags().StringVar(&trimStart, "start", "", "Start frame or HH:MM:SS(.mmm) timestamp (required)")
	trimCmd.Flags().StringVar(&trimEnd, "end", "", "End frame or HH:MM:SS(.mmm) timestamp, inclusive (required)")
	trimCmd.Flags().BoolVar(&trimNoReveal, "no-reveal", false, "Do not open the file browser after trimming")
	trimCmd.MarkFlagRequired("source")
	trimCmd.MarkFlagRequired("start")
	trimCmd.MarkFlagRequired("end")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	runner := command.NewExecRunner()
	var revealer video.Revealer
	if cfg.Trim.Reveal && !trimNoReveal {
		revealer = reveal.NewRevealer(reveal.WithCommandRunner(runner))
	}

	return RunTrimWithDependencies(
		cmd.Context(),
		TrimDependencies{
			Trimmer:     newFFmpegTrimmer(cfg),
			FileChecker: filesystem.NewChecker(),
			Prober:      newProber(cfg, runner),
			Revealer:    revealer,
			Suffix:      cfg.Trim.Suffix,
		},
		trimSourcePath,
		trimStart,
		trimEnd,
		os.Stdout,
	)
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// TrimDependencies are the collaborators of the trim command
type TrimDependencies struct {
	Trimmer     video.Trimmer
	FileChecker video.FileChecker
	Prober      video.Prober
	Revealer    video.Revealer
	Suffix      string
}

// RunTrimWithDependencies runs the trim command with injected dependencies (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	deps TrimDependencies,
	sourcePath string,
	start string,
	end string,
	output OutputWriter,
) error {
	// Verify ffmpeg is available if trimmer supports it
	if verifiable, ok := deps.Trimmer.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	startFrame, endFrame, err := resolvePositions(ctx, deps.Prober, sourcePath, start, end)
	if err != nil {
		return err
	}

	opts := []appvideo.ServiceOption{appvideo.WithSuffix(deps.Suffix), appvideo.WithLogger(GetLogger())}
	if deps.Revealer != nil {
		opts = append(opts, appvideo.WithRevealer(deps.Revealer))
	}
	service := appvideo.NewTrimService(deps.Trimmer, deps.FileChecker, opts...)

	fmt.Fprintf(output, "Trimming frames %d to %d...\n", startFrame, endFrame)

	result, err := service.Trim(ctx, appvideo.TrimInput{
		SourcePath: sourcePath,
		Marks:      video.Marks{Start: &startFrame, End: &endFrame},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%d frames)\n", result.OutputPath, result.Frames)
	return nil
}

// resolvePositions converts start and end to frame numbers and rejects an
// end past the last frame of the source. Timestamps need the source
// metadata; plain frame numbers only skip the length check without it.
func resolvePositions(ctx context.Context, prober video.Prober, sourcePath, start, end string) (int, int, error) {
	needsRate := !isFrameNumber(start) || !isFrameNumber(end)
	if prober == nil && needsRate {
		return 0, 0, fmt.Errorf("%w: timestamps need a metadata prober", video.ErrInvalidUserInput)
	}

	var session video.Session
	if prober != nil {
		probed, err := prober.Probe(ctx, sourcePath)
		switch {
		case err == nil:
			session = probed
		case needsRate:
			return 0, 0, err
		default:
			GetLogger().Debug("Cannot read metadata of %s, end frame not checked: %s", sourcePath, err)
		}
	}

	startFrame, err := video.ParsePosition(start, session.FrameRate)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start: %w", err)
	}
	endFrame, err := video.ParsePosition(end, session.FrameRate)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end: %w", err)
	}

	if session.HasFrames() && !session.Contains(endFrame) {
		return 0, 0, fmt.Errorf("%w: end frame %d is past the last frame %d", video.ErrInvalidRange, endFrame, session.LastFrame())
	}
	return startFrame, endFrame, nil
}

func isFrameNumber(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}
