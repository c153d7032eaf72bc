package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/logging"
	"frametrim/domain/video"
	"frametrim/infrastructure/command"
	"frametrim/infrastructure/config"
	"frametrim/infrastructure/ffmpeg"
	"frametrim/infrastructure/filesystem"
	"frametrim/infrastructure/mp4meta"
	"frametrim/infrastructure/opencv"
	"frametrim/infrastructure/reveal"
)

// newProber returns the metadata chain: container parsing first, ffprobe as
// the fallback for anything mp4ff cannot read.
func newProber(c *config.Config, runner command.Runner) video.Prober {
	return chainProber{mp4meta.NewProber(), ffmpeg.NewFFprobe(c.FFmpeg.FFprobePath, runner)}
}

type chainProber []video.Prober

func (p chainProber) Probe(ctx context.Context, path string) (video.Session, error) {
	var errs []error
	for _, prober := range p {
		session, err := prober.Probe(ctx, path)
		if err == nil {
			session.SourcePath = path
			return session, nil
		}
		errs = append(errs, err)
	}
	return video.Session{}, fmt.Errorf("%w: %w", video.ErrUnreadableSource, errors.Join(errs...))
}

// newDecoder builds the configured frame decoder
func newDecoder(c *config.Config) (video.Decoder, error) {
	switch c.Decoder.Backend {
	case "opencv":
		if !opencv.Available() {
			return nil, fmt.Errorf("decoder backend opencv is not compiled in; rebuild with -tags=opencv or set decoder.backend to ffmpeg")
		}
		return opencv.NewDecoder(), nil
	default:
		runner := command.NewExecRunner()
		return ffmpeg.NewDecoder(
			ffmpeg.WithDecoderFFmpegPath(c.FFmpeg.Path),
			ffmpeg.WithDecoderCommandRunner(runner),
			ffmpeg.WithProbers(mp4meta.NewProber(), ffmpeg.NewFFprobe(c.FFmpeg.FFprobePath, runner)),
		), nil
	}
}

func newFFmpegTrimmer(c *config.Config) *ffmpeg.Trimmer {
	return ffmpeg.NewTrimmer(ffmpeg.WithFFmpegPath(c.FFmpeg.Path))
}

// newTrimService wires the ffmpeg trimmer and the platform revealer
func newTrimService(c *config.Config, l logging.Logger) *appvideo.TrimService {
	opts := []appvideo.ServiceOption{
		appvideo.WithSuffix(c.Trim.Suffix),
		appvideo.WithLogger(l),
	}
	if c.Trim.Reveal {
		opts = append(opts, appvideo.WithRevealer(reveal.NewRevealer()))
	}
	return appvideo.NewTrimService(newFFmpegTrimmer(c), filesystem.NewChecker(), opts...)
}

// seekHint is shown at session start when every seek re-decodes the source
// from its first frame
func seekHint(c *config.Config) string {
	if c.Decoder.Backend == "opencv" {
		return ""
	}
	return "The ffmpeg decoder reads from the first frame on every seek, so seeking slows down on long videos.\n" +
		"For faster seeks build with -tags=opencv and run: frametrim config set decoder.backend opencv"
}

func tickInterval(c *config.Config) time.Duration {
	return time.Duration(c.Playback.TickIntervalMS) * time.Millisecond
}
