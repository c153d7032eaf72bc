package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"frametrim/domain/video"
	"frametrim/infrastructure/command"
)

// FFprobe implements video.Prober by counting packets of the first video stream
type FFprobe struct {
	ffprobePath string
	runner      command.Runner
}

// NewFFprobe creates a prober; an empty path defaults to "ffprobe" on PATH
func NewFFprobe(ffprobePath string, runner command.Runner) *FFprobe {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if runner == nil {
		runner = command.NewExecRunner()
	}
	return &FFprobe{ffprobePath: ffprobePath, runner: runner}
}

// probeOutput represents the JSON printed by ffprobe -of json
type probeOutput struct {
	Streams []struct {
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		RFrameRate    string `json:"r_frame_rate"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
	} `json:"streams"`
}

// Probe implements video.Prober
func (p *FFprobe) Probe(ctx context.Context, path string) (video.Session, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames,nb_read_packets",
		"-of", "json",
		path,
	)
	if err != nil {
		return video.Session{}, fmt.Errorf("%w: ffprobe %s: %v", video.ErrUnreadableSource, path, err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return video.Session{}, fmt.Errorf("%w: failed to parse ffprobe output: %v", video.ErrUnreadableSource, err)
	}
	if len(parsed.Streams) == 0 {
		return video.Session{}, fmt.Errorf("%w: %s has no video stream", video.ErrUnreadableSource, path)
	}

	s := parsed.Streams[0]
	frames := atoiOrZero(s.NbReadPackets)
	if frames == 0 {
		frames = atoiOrZero(s.NbFrames)
	}

	return video.Session{
		SourcePath:  path,
		TotalFrames: frames,
		FrameRate:   parseRate(s.RFrameRate),
		Width:       s.Width,
		Height:      s.Height,
	}, nil
}

// parseRate parses ffprobe rationals such as "30000/1001"
func parseRate(r string) float64 {
	num, den, found := strings.Cut(r, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Ensure FFprobe implements video.Prober
var _ video.Prober = (*FFprobe)(nil)
