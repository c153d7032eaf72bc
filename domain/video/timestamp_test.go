package video

import (
	"errors"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Timestamp
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid timestamp",
			input: "01:30:45",
			want:  Timestamp{Hours: 1, Minutes: 30, Seconds: 45},
		},
		{
			name:  "all zeros",
			input: "00:00:00",
			want:  Timestamp{},
		},
		{
			name:  "milliseconds",
			input: "00:00:04.250",
			want:  Timestamp{Seconds: 4, Milliseconds: 250},
		},
		{
			name:  "single fractional digit is tenths",
			input: "00:00:01.5",
			want:  Timestamp{Seconds: 1, Milliseconds: 500},
		},
		{
			name:  "max valid minutes/seconds",
			input: "23:59:59",
			want:  Timestamp{Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:    "missing leading zero in hours",
			input:   "1:30:45",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "too many fractional digits",
			input:   "00:00:01.1234",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "wrong separator - dash",
			input:   "01-30-45",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "minutes too high",
			input:   "01:60:00",
			wantErr: true,
			errMsg:  "minutes must be 0-59",
		},
		{
			name:    "seconds too high",
			input:   "01:30:60",
			wantErr: true,
			errMsg:  "seconds must be 0-59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimestamp(%q) expected error, got nil", tt.input)
					return
				}
				if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseTimestamp(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimestamp_String(t *testing.T) {
	tests := []struct {
		timestamp Timestamp
		want      string
	}{
		{Timestamp{}, "00:00:00"},
		{Timestamp{Hours: 1, Minutes: 2, Seconds: 3}, "01:02:03"},
		{Timestamp{Hours: 12, Minutes: 34, Seconds: 56}, "12:34:56"},
		{Timestamp{Seconds: 4, Milliseconds: 40}, "00:00:04.040"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.timestamp.String(); got != tt.want {
				t.Errorf("Timestamp.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimestampForFrame(t *testing.T) {
	tests := []struct {
		name  string
		index int
		fps   float64
		want  string
	}{
		{"first frame", 0, 25, "00:00:00"},
		{"one second at 25fps", 25, 25, "00:00:01"},
		{"mid second", 30, 60, "00:00:00.500"},
		{"ntsc rate", 30, 29.97, "00:00:01.001"},
		{"one hour", 90000, 25, "01:00:00"},
		{"unknown rate", 100, 0, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimestampForFrame(tt.index, tt.fps).String(); got != tt.want {
				t.Errorf("TimestampForFrame(%d, %v) = %q, want %q", tt.index, tt.fps, got, tt.want)
			}
		})
	}
}

func TestTimestamp_FrameAt(t *testing.T) {
	tests := []struct {
		ts   Timestamp
		fps  float64
		want int
	}{
		{Timestamp{}, 30, 0},
		{Timestamp{Seconds: 1}, 30, 30},
		{Timestamp{Seconds: 4, Milliseconds: 500}, 24, 108},
		{Timestamp{Minutes: 1}, 25, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.ts.String(), func(t *testing.T) {
			if got := tt.ts.FrameAt(tt.fps); got != tt.want {
				t.Errorf("Timestamp.FrameAt(%v) = %d, want %d", tt.fps, got, tt.want)
			}
		})
	}
}

func TestTimestamp_FrameRoundTrip(t *testing.T) {
	for _, fps := range []float64{24, 25, 30, 60} {
		for _, index := range []int{0, 1, 17, 250, 9999} {
			if got := TimestampForFrame(index, fps).FrameAt(fps); got != index {
				t.Errorf("frame %d at %v fps round-tripped to %d", index, fps, got)
			}
		}
	}
}

func TestTimestamp_TotalSeconds(t *testing.T) {
	tests := []struct {
		timestamp Timestamp
		want      int
	}{
		{Timestamp{}, 0},
		{Timestamp{Seconds: 1}, 1},
		{Timestamp{Minutes: 1}, 60},
		{Timestamp{Hours: 1}, 3600},
		{Timestamp{Hours: 1, Minutes: 30, Seconds: 45, Milliseconds: 999}, 5445},
	}

	for _, tt := range tests {
		t.Run(tt.timestamp.String(), func(t *testing.T) {
			if got := tt.timestamp.TotalSeconds(); got != tt.want {
				t.Errorf("Timestamp.TotalSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		fps     float64
		want    int
		wantErr bool
	}{
		{name: "frame number", input: "120", fps: 0, want: 120},
		{name: "frame number with spaces", input: " 7 ", fps: 25, want: 7},
		{name: "timestamp", input: "00:00:02", fps: 25, want: 50},
		{name: "timestamp with millis", input: "00:00:01.500", fps: 30, want: 45},
		{name: "negative frame", input: "-1", fps: 25, wantErr: true},
		{name: "timestamp without rate", input: "00:00:02", fps: 0, wantErr: true},
		{name: "garbage", input: "abc", fps: 25, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input, tt.fps)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidUserInput) {
					t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidUserInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
