package process

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/video"
)

// --- Mock implementations for testing ---

// mockProber implements video.Prober for testing
type mockProber struct {
	session video.Session
	err     error
}

func (m *mockProber) Probe(ctx context.Context, path string) (video.Session, error) {
	if m.err != nil {
		return video.Session{}, m.err
	}
	s := m.session
	s.SourcePath = path
	return s, nil
}

// mockTrimmer implements Trimmer for testing
type mockTrimmer struct {
	shouldFail bool
	failError  error
	revealed   bool
	inputs     []appvideo.TrimInput
}

func (m *mockTrimmer) Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error) {
	m.inputs = append(m.inputs, input)
	if m.shouldFail {
		return nil, m.failError
	}
	return &appvideo.TrimResult{
		OutputPath: strings.TrimSuffix(input.SourcePath, ".mp4") + "_trimmed.mp4",
		Start:      *input.Marks.Start,
		End:        *input.Marks.End,
		Revealed:   m.revealed,
	}, nil
}

// mockFileChecker implements video.FileChecker for testing
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// mockFinder implements VideoFinder for testing
type mockFinder struct {
	newest string
	err    error
}

func (m *mockFinder) NewestVideo(dir, trimSuffix string) (string, error) {
	return m.newest, m.err
}

func newTestService(trimmer *mockTrimmer, out *bytes.Buffer) *Service {
	return NewService(
		&mockProber{session: video.Session{TotalFrames: 100, FrameRate: 25, Width: 1280, Height: 720}},
		trimmer,
		&mockFileChecker{existingFiles: map[string]bool{
			"/videos/clip.mp4":   true,
			"/videos/newest.mp4": true,
		}},
		&mockFinder{newest: "/videos/newest.mp4"},
		"_trimmed",
		out,
	)
}

func TestProcess_FrameNumbers(t *testing.T) {
	var out bytes.Buffer
	trimmer := &mockTrimmer{revealed: true}
	svc := newTestService(trimmer, &out)

	result, err := svc.Process(context.Background(), Input{InputPath: "/videos/clip.mp4", Start: "10", End: "20"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Start != 10 || result.End != 20 {
		t.Errorf("range = %d-%d, want 10-20", result.Start, result.End)
	}
	if result.OutputPath != "/videos/clip_trimmed.mp4" {
		t.Errorf("OutputPath = %q", result.OutputPath)
	}
	if !result.Revealed {
		t.Error("expected Revealed")
	}

	output := out.String()
	for _, want := range []string{"[1/3]", "[2/3]", "[3/3]", "Frames 10-20", "Done!"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestProcess_Timestamps(t *testing.T) {
	var out bytes.Buffer
	trimmer := &mockTrimmer{}
	svc := newTestService(trimmer, &out)

	result, err := svc.Process(context.Background(), Input{InputPath: "/videos/clip.mp4", Start: "00:00:01", End: "00:00:02.000"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Start != 25 || result.End != 50 {
		t.Errorf("range = %d-%d, want 25-50", result.Start, result.End)
	}
	if !strings.Contains(out.String(), "Skipped") {
		t.Error("reveal step should report it was skipped")
	}
}

func TestProcess_NewestInDirectory(t *testing.T) {
	var out bytes.Buffer
	trimmer := &mockTrimmer{}
	svc := newTestService(trimmer, &out)

	_, err := svc.Process(context.Background(), Input{SearchDir: "/videos", Start: "0", End: "5"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if trimmer.inputs[0].SourcePath != "/videos/newest.mp4" {
		t.Errorf("source = %q, want newest", trimmer.inputs[0].SourcePath)
	}
}

func TestProcess_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantRange bool
		wantText  string
	}{
		{"no source", Input{Start: "0", End: "1"}, false, "no source video"},
		{"bad start", Input{InputPath: "/videos/clip.mp4", Start: "soon", End: "1"}, false, "invalid start"},
		{"past the end", Input{InputPath: "/videos/clip.mp4", Start: "0", End: "100"}, true, "frametrim probe"},
		{"reversed", Input{InputPath: "/videos/clip.mp4", Start: "50", End: "40"}, true, "is after end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trimmer := &mockTrimmer{}
			svc := newTestService(trimmer, &bytes.Buffer{})

			_, err := svc.Process(context.Background(), tt.input)
			if !IsValidationError(err) {
				t.Fatalf("Process() error = %v, want a validation error", err)
			}
			if tt.wantRange != errors.Is(err, video.ErrInvalidRange) {
				t.Errorf("errors.Is(ErrInvalidRange) = %v, want %v", !tt.wantRange, tt.wantRange)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
			if len(trimmer.inputs) != 0 {
				t.Error("trimmer must not run on invalid input")
			}
		})
	}
}

func TestProcess_MissingSource(t *testing.T) {
	svc := newTestService(&mockTrimmer{}, &bytes.Buffer{})

	_, err := svc.Process(context.Background(), Input{InputPath: "/videos/gone.mp4", Start: "0", End: "1"})
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Process() error = %v", err)
	}
}

func TestProcess_TrimFailureShowsRecovery(t *testing.T) {
	var out bytes.Buffer
	svc := newTestService(&mockTrimmer{shouldFail: true, failError: video.ErrEncodeFailed}, &out)

	_, err := svc.Process(context.Background(), Input{InputPath: "/videos/clip.mp4", Start: "10", End: "20"})
	if !errors.Is(err, video.ErrEncodeFailed) {
		t.Fatalf("Process() error = %v, want ErrEncodeFailed", err)
	}
	if !strings.Contains(out.String(), "frametrim trim --source") {
		t.Errorf("recovery commands missing:\n%s", out.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{4 * time.Second, "4s"},
		{90 * time.Second, "1m 30s"},
		{1500 * time.Millisecond, "2s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestGetSteps(t *testing.T) {
	steps := GetSteps()
	if len(steps) != 3 || steps[1].Description != "Trimming frames" {
		t.Errorf("GetSteps() = %+v", steps)
	}
}
