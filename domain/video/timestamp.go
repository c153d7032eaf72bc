package video

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Timestamp represents a position in a video in HH:MM:SS(.mmm) format
type Timestamp struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// timestampRegex matches HH:MM:SS with optional milliseconds
var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)

// ParseTimestamp parses a timestamp string in HH:MM:SS or HH:MM:SS.mmm format
func ParseTimestamp(s string) (Timestamp, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp format %q: expected HH:MM:SS", s)
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])

	millis := 0
	if matches[4] != "" {
		// ".5" means 500ms, ".05" means 50ms
		frac := matches[4] + strings.Repeat("0", 3-len(matches[4]))
		millis, _ = strconv.Atoi(frac)
	}

	if minutes > 59 {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: minutes must be 0-59", s)
	}
	if seconds > 59 {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
	}

	return Timestamp{
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		Milliseconds: millis,
	}, nil
}

// TimestampForFrame converts a frame index to its nominal presentation time.
// It returns the zero timestamp when the frame rate is unknown.
func TimestampForFrame(index int, fps float64) Timestamp {
	if fps <= 0 || index <= 0 {
		return Timestamp{}
	}
	totalMillis := int(math.Round(float64(index) * 1000 / fps))
	return Timestamp{
		Hours:        totalMillis / 3_600_000,
		Minutes:      (totalMillis % 3_600_000) / 60_000,
		Seconds:      (totalMillis % 60_000) / 1000,
		Milliseconds: totalMillis % 1000,
	}
}

// String returns the timestamp in HH:MM:SS format, with milliseconds when non-zero
func (t Timestamp) String() string {
	if t.Milliseconds != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hours, t.Minutes, t.Seconds, t.Milliseconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// TotalSeconds returns the whole seconds of the timestamp
func (t Timestamp) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// TotalMilliseconds returns the timestamp as total milliseconds
func (t Timestamp) TotalMilliseconds() int {
	return t.TotalSeconds()*1000 + t.Milliseconds
}

// FrameAt returns the index of the frame shown at this timestamp for the given rate.
// Half a millisecond is added back to absorb the rounding of TimestampForFrame.
func (t Timestamp) FrameAt(fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Floor((float64(t.TotalMilliseconds()) + 0.5) * fps / 1000))
}

// ParsePosition parses a frame position given either as a frame index ("120")
// or as a timestamp ("00:00:04.000") converted with fps
func ParsePosition(s string, fps float64) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: frame %d is negative", ErrInvalidUserInput, n)
		}
		return n, nil
	}

	ts, err := ParseTimestamp(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is neither a frame number nor a timestamp", ErrInvalidUserInput, s)
	}
	if fps <= 0 {
		return 0, fmt.Errorf("%w: timestamp %s needs a known frame rate", ErrInvalidUserInput, ts)
	}
	return ts.FrameAt(fps), nil
}
