// Package reveal shows files in the host operating system's file browser.
package reveal

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"frametrim/domain/video"
	"frametrim/infrastructure/command"
)

// Revealer implements video.Revealer by launching the platform file browser
type Revealer struct {
	goos   string
	runner command.Runner
}

// Option configures a Revealer
type Option func(*Revealer)

// WithOS overrides the detected operating system
func WithOS(goos string) Option {
	return func(r *Revealer) {
		r.goos = goos
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) Option {
	return func(r *Revealer) {
		r.runner = runner
	}
}

// NewRevealer creates a revealer for the current platform
func NewRevealer(opts ...Option) *Revealer {
	r := &Revealer{
		goos:   runtime.GOOS,
		runner: command.NewExecRunner(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Command returns the program and arguments that reveal abs
func Command(goos, abs string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{"/select," + abs}
	case "darwin":
		return "open", []string{"-R", abs}
	default:
		return "xdg-open", []string{filepath.Dir(abs)}
	}
}

// Reveal implements video.Revealer
func (r *Revealer) Reveal(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %v", video.ErrRevealFailed, err)
	}

	name, args := Command(r.goos, abs)
	if err := r.runner.Run(ctx, name, args...); err != nil {
		// explorer.exe exits 1 even when the window opened
		if r.goos == "windows" && command.ExitCode(err) == 1 {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", video.ErrRevealFailed, name, err)
	}
	return nil
}

// Ensure Revealer implements video.Revealer
var _ video.Revealer = (*Revealer)(nil)
