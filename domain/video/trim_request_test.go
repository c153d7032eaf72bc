package video

import (
	"errors"
	"testing"
)

func TestNewTrimRequest(t *testing.T) {
	tests := []struct {
		name        string
		sourcePath  string
		start       int
		end         int
		wantErr     bool
		wantRange   bool
		errContains string
	}{
		{
			name:       "valid request",
			sourcePath: "/videos/clip.mp4",
			start:      10,
			end:        20,
		},
		{
			name:       "single frame",
			sourcePath: "/videos/clip.mov",
			start:      5,
			end:        5,
		},
		{
			name:        "empty source",
			sourcePath:  "",
			start:       0,
			end:         1,
			wantErr:     true,
			errContains: "source path is required",
		},
		{
			name:       "end before start",
			sourcePath: "/videos/clip.mp4",
			start:      20,
			end:        10,
			wantErr:    true,
			wantRange:  true,
		},
		{
			name:       "negative start",
			sourcePath: "/videos/clip.mp4",
			start:      -1,
			end:        10,
			wantErr:    true,
			wantRange:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTrimRequest(tt.sourcePath, tt.start, tt.end)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewTrimRequest() expected error, got nil")
				}
				if tt.wantRange && !errors.Is(err, ErrInvalidRange) {
					t.Errorf("NewTrimRequest() error = %v, want ErrInvalidRange", err)
				}
				if tt.errContains != "" && !contains(err.Error(), tt.errContains) {
					t.Errorf("NewTrimRequest() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewTrimRequest() unexpected error: %v", err)
			}
			if got.Start != tt.start || got.End != tt.end {
				t.Errorf("NewTrimRequest() range = [%d,%d], want [%d,%d]", got.Start, got.End, tt.start, tt.end)
			}
		})
	}
}

func TestTrimRequest_SelectExpression(t *testing.T) {
	req := &TrimRequest{SourcePath: "/v/a.mp4", Start: 10, End: 20}

	want := `select=between(n\,10\,20)`
	if got := req.SelectExpression(); got != want {
		t.Errorf("SelectExpression() = %q, want %q", got, want)
	}
	if got := req.FrameCount(); got != 11 {
		t.Errorf("FrameCount() = %d, want 11", got)
	}
}

func TestTrimRequest_OutputPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		suffix string
		want   string
	}{
		{"default suffix", "/home/user/videos/holiday.mp4", "", "/home/user/videos/holiday_trimmed.mp4"},
		{"mov source keeps mp4 container", "/tmp/take 3.mov", "", "/tmp/take 3_trimmed.mp4"},
		{"custom suffix", "/tmp/a.avi", "_cut", "/tmp/a_cut.mp4"},
		{"dotted base name", "/tmp/v1.2.final.mp4", "", "/tmp/v1.2.final_trimmed.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &TrimRequest{SourcePath: tt.source, Start: 0, End: 1}
			if got := req.OutputPath(tt.suffix); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}
