package reveal

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"frametrim/domain/video"
)

type mockRunner struct {
	name string
	args []string
	err  error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.name = name
	m.args = args
	return m.err
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, m.Run(ctx, name, args...)
}

func (m *mockRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, m.Run(ctx, name, args...)
}

func TestCommand(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "videos", "clip_trimmed.mp4")

	tests := []struct {
		goos     string
		wantName string
		wantArg  string
	}{
		{"windows", "explorer", "/select," + abs},
		{"darwin", "open", abs},
		{"linux", "xdg-open", filepath.Dir(abs)},
		{"freebsd", "xdg-open", filepath.Dir(abs)},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := Command(tt.goos, abs)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if got := args[len(args)-1]; got != tt.wantArg {
				t.Errorf("last arg = %q, want %q", got, tt.wantArg)
			}
		})
	}
}

func TestReveal_UsesAbsolutePath(t *testing.T) {
	runner := &mockRunner{}
	r := NewRevealer(WithOS("darwin"), WithCommandRunner(runner))

	if err := r.Reveal(context.Background(), "clip_trimmed.mp4"); err != nil {
		t.Fatalf("Reveal() error = %v", err)
	}

	if runner.name != "open" {
		t.Errorf("ran %q, want open", runner.name)
	}
	if !filepath.IsAbs(runner.args[1]) {
		t.Errorf("path %q is not absolute", runner.args[1])
	}
}

func TestReveal_Failure(t *testing.T) {
	runner := &mockRunner{err: exec.ErrNotFound}
	r := NewRevealer(WithOS("linux"), WithCommandRunner(runner))

	err := r.Reveal(context.Background(), "/videos/clip_trimmed.mp4")
	if !errors.Is(err, video.ErrRevealFailed) {
		t.Errorf("Reveal() error = %v, want ErrRevealFailed", err)
	}
}
